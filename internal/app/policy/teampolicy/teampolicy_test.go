package teampolicy

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func team(creator primitive.ObjectID, public bool, members ...models.TeamMember) *models.Team {
	return &models.Team{
		ID:          primitive.NewObjectID(),
		Name:        "Park Cleanup Crew",
		IsPublic:    public,
		Creator:     creator,
		Members:     members,
		MemberCount: int64(len(members)),
	}
}

func member(id primitive.ObjectID, role string) models.TeamMember {
	return models.TeamMember{UserID: id, Role: role, JoinedAt: time.Now()}
}

func TestCanJoin(t *testing.T) {
	creator := primitive.NewObjectID()
	existing := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	public := team(creator, true,
		member(creator, models.TeamRoleAdmin),
		member(existing, models.TeamRoleMember))
	private := team(creator, false, member(creator, models.TeamRoleAdmin))

	if err := CanJoin(public, stranger); err != nil {
		t.Errorf("stranger joining public team: %v", err)
	}
	if err := CanJoin(public, existing); !errors.Is(err, faults.ErrConflict) {
		t.Errorf("duplicate join should conflict, got %v", err)
	}
	if err := CanJoin(private, stranger); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("joining private team should be forbidden, got %v", err)
	}
}

func TestCanLeave_NotMember(t *testing.T) {
	creator := primitive.NewObjectID()
	tm := team(creator, true, member(creator, models.TeamRoleAdmin))

	if err := CanLeave(tm, primitive.NewObjectID()); !errors.Is(err, faults.ErrConflict) {
		t.Errorf("non-member leave should conflict, got %v", err)
	}
}

func TestCanLeave_CreatorCannotLeave(t *testing.T) {
	creator := primitive.NewObjectID()
	other := primitive.NewObjectID()
	tm := team(creator, true,
		member(creator, models.TeamRoleAdmin),
		member(other, models.TeamRoleAdmin))

	// Even with another admin present, the creator stays.
	if err := CanLeave(tm, creator); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("creator leave should be forbidden, got %v", err)
	}
}

func TestCanLeave_LastAdminCannotAbandonMembers(t *testing.T) {
	creator := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	plain := primitive.NewObjectID()

	// Creator demoted themselves; admin is now the only admin.
	tm := team(creator, true,
		member(creator, models.TeamRoleMember),
		member(admin, models.TeamRoleAdmin),
		member(plain, models.TeamRoleMember))

	if err := CanLeave(tm, admin); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("sole admin leave should be forbidden, got %v", err)
	}
	if err := CanLeave(tm, plain); err != nil {
		t.Errorf("plain member leave: %v", err)
	}
}

func TestCanLeave_SecondAdminMayLeave(t *testing.T) {
	creator := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	tm := team(creator, true,
		member(creator, models.TeamRoleAdmin),
		member(admin, models.TeamRoleAdmin))

	if err := CanLeave(tm, admin); err != nil {
		t.Errorf("non-creator admin with another admin present should leave freely: %v", err)
	}
}

func TestCanManage(t *testing.T) {
	creator := primitive.NewObjectID()
	tm := team(creator, true, member(creator, models.TeamRoleAdmin))

	if err := CanManage(tm, creator); err != nil {
		t.Errorf("creator manage: %v", err)
	}
	if err := CanManage(tm, primitive.NewObjectID()); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("non-creator manage should be forbidden, got %v", err)
	}
}

func TestValidateNew(t *testing.T) {
	if err := ValidateNew(&models.Team{Name: "Crew", Cause: "environment"}); err != nil {
		t.Errorf("valid team: %v", err)
	}
	if err := ValidateNew(&models.Team{}); !errors.Is(err, faults.ErrValidation) {
		t.Errorf("missing name should fail validation, got %v", err)
	}
	if err := ValidateNew(&models.Team{Name: "Crew", Cause: "bogus"}); !errors.Is(err, faults.ErrValidation) {
		t.Errorf("unknown cause should fail validation, got %v", err)
	}
}
