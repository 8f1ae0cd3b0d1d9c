// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member roles within a team.
const (
	TeamRoleAdmin  = "admin"
	TeamRoleMember = "member"
)

// Causes a team may support.
var TeamCauses = []string{
	"environment",
	"education",
	"food",
	"healthcare",
	"animals",
	"elderly",
	"development",
	"community",
}

// Team is a group of volunteers.
//
// NOTE:
//   - Members are embedded on the team document; the user's Teams field is
//     a mirror maintained as a second write.
//   - MemberCount is always recomputed from Members in the same update that
//     changes Members, so MemberCount == len(Members) at every observable
//     point.
//   - The creator is a permanent member and may not leave; a team always
//     keeps at least one admin.
type Team struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Cause       string             `bson:"cause" json:"cause"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	IsPublic    bool               `bson:"is_public" json:"is_public"`

	Creator primitive.ObjectID `bson:"creator" json:"creator"`
	Members []TeamMember       `bson:"members" json:"members"`
	Events  []primitive.ObjectID `bson:"events" json:"events"`

	MemberCount      int64   `bson:"member_count" json:"member_count"`
	EventsCount      int64   `bson:"events_count" json:"events_count"`
	HoursContributed float64 `bson:"hours_contributed" json:"hours_contributed"`

	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TeamMember links a user to a team with a role.
type TeamMember struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role     string             `bson:"role" json:"role"`
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
}

// MemberIndex returns the position of the user in Members, or -1.
func (t *Team) MemberIndex(userID primitive.ObjectID) int {
	for i, m := range t.Members {
		if m.UserID == userID {
			return i
		}
	}
	return -1
}

// AdminCount returns how many members hold the admin role.
func (t *Team) AdminCount() int {
	n := 0
	for _, m := range t.Members {
		if m.Role == TeamRoleAdmin {
			n++
		}
	}
	return n
}

// ValidTeamCause reports whether cause is one of the supported causes.
func ValidTeamCause(cause string) bool {
	for _, c := range TeamCauses {
		if c == cause {
			return true
		}
	}
	return false
}
