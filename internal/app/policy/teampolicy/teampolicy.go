// internal/app/policy/teampolicy/teampolicy.go

// Package teampolicy holds the membership rules for teams. The store
// re-evaluates these on every retry of a versioned write so a decision is
// always made against the state being replaced.
package teampolicy

import (
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanJoin reports whether the user may join the team.
func CanJoin(t *models.Team, userID primitive.ObjectID) error {
	if t.MemberIndex(userID) >= 0 {
		return faults.Conflict("already a member of this team")
	}
	if !t.IsPublic && t.Creator != userID {
		return faults.Forbidden("this team is private")
	}
	return nil
}

// CanLeave reports whether the user may leave the team. The creator is a
// permanent member, and the last admin cannot abandon a team that still
// has members.
func CanLeave(t *models.Team, userID primitive.ObjectID) error {
	i := t.MemberIndex(userID)
	if i < 0 {
		return faults.Conflict("you are not a member of this team")
	}
	if t.Creator == userID {
		return faults.Forbidden("the team creator cannot leave the team")
	}
	if t.Members[i].Role == models.TeamRoleAdmin && t.AdminCount() == 1 && len(t.Members) > 1 {
		return faults.Forbidden("assign another admin before leaving the team")
	}
	return nil
}

// CanManage reports whether the user may update or delete the team.
func CanManage(t *models.Team, userID primitive.ObjectID) error {
	if t.Creator != userID {
		return faults.Forbidden("only the team creator can do that")
	}
	return nil
}

// ValidateNew checks the fields of a team being created.
func ValidateNew(t *models.Team) error {
	if t.Name == "" {
		return faults.Validation("team name is required")
	}
	if t.Cause != "" && !models.ValidTeamCause(t.Cause) {
		return faults.Validation("unknown team cause")
	}
	return nil
}
