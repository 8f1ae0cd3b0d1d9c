package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Beach cleanup at 9am"); got != "Beach cleanup at 9am" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bring gloves</strong> and <em>water</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	if got := htmlsanitize.Sanitize(input); got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<button onclick="alert('xss')">Click</button>`
	if got := htmlsanitize.Sanitize(input); strings.Contains(got, "onclick") {
		t.Errorf("expected onclick attribute removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	if got := htmlsanitize.Sanitize(input); strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	input := `<a href="https://example.com/signup">Sign up</a>`
	got := htmlsanitize.Sanitize(input)
	if !strings.Contains(got, "https://example.com/signup") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestSanitize_AllowsLists(t *testing.T) {
	input := "<ul><li>Gloves</li><li>Trash bags</li></ul>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected list preserved, got %q", got)
	}
}

func TestSanitize_AllowsTables(t *testing.T) {
	input := `<table><tr><td colspan="2">Shift schedule</td></tr></table>`
	got := htmlsanitize.Sanitize(input)
	if !strings.Contains(got, `colspan="2"`) {
		t.Errorf("expected colspan preserved, got %q", got)
	}
}

func TestSanitize_RemovesIframe(t *testing.T) {
	input := `<p>Details</p><iframe src="https://evil.com"></iframe>`
	got := htmlsanitize.Sanitize(input)
	if strings.Contains(got, "iframe") {
		t.Errorf("expected iframe removed, got %q", got)
	}
	if !strings.Contains(got, "Details") {
		t.Errorf("expected safe content preserved, got %q", got)
	}
}

func TestSanitize_RemovesFormElements(t *testing.T) {
	input := `<form action="/submit"><input type="text"></form>`
	got := htmlsanitize.Sanitize(input)
	if strings.Contains(got, "<form") || strings.Contains(got, "<input") {
		t.Errorf("expected form elements removed, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Park Cleanup Crew", "Park Cleanup Crew"},
		{"<b>Park</b> Cleanup", "Park Cleanup"},
		{"<script>alert('x')</script>Crew", "Crew"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := htmlsanitize.StripTags(tc.in); got != tc.want {
			t.Errorf("StripTags(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
