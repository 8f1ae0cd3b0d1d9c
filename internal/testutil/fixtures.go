package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test volunteer account.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtest",
		Skills:       []string{},
		Causes:       []string{},
		PendingHours: []models.PendingHourEntry{},
		Certificates: []models.Certificate{},
		EventsJoined: []primitive.ObjectID{},
		Teams:        []primitive.ObjectID{},
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTeam creates a test team with the creator as sole admin member.
func (f *Fixtures) CreateTeam(ctx context.Context, name string, creator primitive.ObjectID, public bool) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:       primitive.NewObjectID(),
		Name:     name,
		NameCI:   text.Fold(name),
		IsPublic: public,
		Creator:  creator,
		Members: []models.TeamMember{
			{UserID: creator, Role: models.TeamRoleAdmin, JoinedAt: now},
		},
		MemberCount: 1,
		Events:      []primitive.ObjectID{},
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateEvent creates a test event with the given capacity.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, creator primitive.ObjectID, maxParticipants int64) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:              primitive.NewObjectID(),
		Title:           title,
		TitleCI:         text.Fold(title),
		Date:            now.Add(48 * time.Hour),
		StartTime:       "09:00",
		EndTime:         "12:00",
		Location:        "Test Park",
		MaxParticipants: maxParticipants,
		CreatedBy:       creator,
		Participants:    []primitive.ObjectID{},
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateHelpRequest creates a test help request.
func (f *Fixtures) CreateHelpRequest(ctx context.Context, title string, creator primitive.ObjectID) models.HelpRequest {
	f.t.Helper()

	now := time.Now().UTC()
	req := models.HelpRequest{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test help request description",
		Location:    "Test Town",
		Urgency:     models.UrgencyMedium,
		Category:    "general",
		CreatedBy:   creator,
		Helpers:     []primitive.ObjectID{},
		Offers:      0,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("help_requests").InsertOne(ctx, req); err != nil {
		f.t.Fatalf("failed to create test help request: %v", err)
	}
	return req
}

// AddPendingHours appends a pending hour entry directly to the user
// document and returns the entry.
func (f *Fixtures) AddPendingHours(ctx context.Context, userID, eventID primitive.ObjectID, hours float64) models.PendingHourEntry {
	f.t.Helper()

	entry := models.PendingHourEntry{
		ID:            primitive.NewObjectID(),
		EventID:       eventID,
		Hours:         hours,
		Date:          time.Now().UTC(),
		Status:        models.HourStatusPending,
		Verifications: []primitive.ObjectID{},
	}

	res := f.db.Collection("users").FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"pending_hours": entry}})
	if res.Err() != nil {
		f.t.Fatalf("failed to add pending hours: %v", res.Err())
	}
	return entry
}
