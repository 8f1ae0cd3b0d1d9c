// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/policy/teampolicy"
	"github.com/dalemusser/volunteerhub/internal/app/system/reconcile"
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// maxRetries bounds the optimistic-write retry loop. Each retry re-reads
// the document and re-evaluates policy against the fresh state.
const maxRetries = 3

var (
	ErrDuplicateTeamName = faults.Conflict("a team with this name already exists")
	ErrConcurrentUpdate  = faults.Conflict("the team was modified concurrently, please retry")
)

type Store struct {
	c   *mongo.Collection
	rec *reconcile.Reconciler
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		c:   db.Collection("teams"),
		rec: reconcile.New(db, logger),
		log: logger,
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Team{}, faults.NotFound("team not found")
		}
		return models.Team{}, err
	}
	return t, nil
}

// Create inserts a team with the creator as its sole admin member. The
// member count is derived from the member list, never set by callers.
func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	if err := teampolicy.ValidateNew(&t); err != nil {
		return models.Team{}, err
	}

	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.NameCI = text.Fold(t.Name)
	t.Members = []models.TeamMember{{
		UserID:   t.Creator,
		Role:     models.TeamRoleAdmin,
		JoinedAt: now,
	}}
	t.MemberCount = reconcile.MemberCount(t.Members)
	t.Events = []primitive.ObjectID{}
	t.EventsCount = 0
	t.HoursContributed = 0
	t.Version = 1
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateTeamName
		}
		return models.Team{}, err
	}

	s.mirrorUser(ctx, t.Creator)
	return t, nil
}

// Join adds the user as a member. The membership list and member_count are
// rewritten together under a version guard so the count can never drift
// from the list, even under concurrent joins.
func (s *Store) Join(ctx context.Context, teamID, userID primitive.ObjectID) (models.Team, error) {
	now := time.Now().UTC()
	for attempt := 0; attempt < maxRetries; attempt++ {
		t, err := s.GetByID(ctx, teamID)
		if err != nil {
			return models.Team{}, err
		}
		if err := teampolicy.CanJoin(&t, userID); err != nil {
			return models.Team{}, err
		}

		members := append(append([]models.TeamMember{}, t.Members...), models.TeamMember{
			UserID:   userID,
			Role:     models.TeamRoleMember,
			JoinedAt: now,
		})

		ok, err := s.replaceMembers(ctx, teamID, t.Version, members, now)
		if err != nil {
			return models.Team{}, err
		}
		if ok {
			t.Members = members
			t.MemberCount = reconcile.MemberCount(members)
			t.Version++
			t.UpdatedAt = now
			s.mirrorUser(ctx, userID)
			return t, nil
		}
	}
	return models.Team{}, ErrConcurrentUpdate
}

// Leave removes the user from the team. The creator may never leave, and
// the last admin may not abandon a team that still has members.
func (s *Store) Leave(ctx context.Context, teamID, userID primitive.ObjectID) (models.Team, error) {
	now := time.Now().UTC()
	for attempt := 0; attempt < maxRetries; attempt++ {
		t, err := s.GetByID(ctx, teamID)
		if err != nil {
			return models.Team{}, err
		}
		if err := teampolicy.CanLeave(&t, userID); err != nil {
			return models.Team{}, err
		}

		members := make([]models.TeamMember, 0, len(t.Members)-1)
		for _, m := range t.Members {
			if m.UserID != userID {
				members = append(members, m)
			}
		}

		ok, err := s.replaceMembers(ctx, teamID, t.Version, members, now)
		if err != nil {
			return models.Team{}, err
		}
		if ok {
			t.Members = members
			t.MemberCount = reconcile.MemberCount(members)
			t.Version++
			t.UpdatedAt = now
			s.mirrorUser(ctx, userID)
			return t, nil
		}
	}
	return models.Team{}, ErrConcurrentUpdate
}

// Update holds the mutable team fields. Nil pointers leave a field as is.
type Update struct {
	Name        *string
	Description *string
	Cause       *string
	Avatar      *string
	IsPublic    *bool
}

// UpdateInfo applies creator-only edits under a version guard.
func (s *Store) UpdateInfo(ctx context.Context, teamID, callerID primitive.ObjectID, upd Update) (models.Team, error) {
	if upd.Cause != nil && *upd.Cause != "" && !models.ValidTeamCause(*upd.Cause) {
		return models.Team{}, faults.Validation("unknown team cause")
	}
	if upd.Name != nil && *upd.Name == "" {
		return models.Team{}, faults.Validation("team name is required")
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		t, err := s.GetByID(ctx, teamID)
		if err != nil {
			return models.Team{}, err
		}
		if err := teampolicy.CanManage(&t, callerID); err != nil {
			return models.Team{}, err
		}

		now := time.Now().UTC()
		set := bson.M{"updated_at": now}
		if upd.Name != nil {
			set["name"] = *upd.Name
			set["name_ci"] = text.Fold(*upd.Name)
		}
		if upd.Description != nil {
			set["description"] = *upd.Description
		}
		if upd.Cause != nil {
			set["cause"] = *upd.Cause
		}
		if upd.Avatar != nil {
			set["avatar"] = *upd.Avatar
		}
		if upd.IsPublic != nil {
			set["is_public"] = *upd.IsPublic
		}

		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": teamID, "version": t.Version},
			bson.M{"$set": set, "$inc": bson.M{"version": 1}})
		if err != nil {
			if wafflemongo.IsDup(err) {
				return models.Team{}, ErrDuplicateTeamName
			}
			return models.Team{}, err
		}
		if res.ModifiedCount == 1 {
			return s.GetByID(ctx, teamID)
		}
	}
	return models.Team{}, ErrConcurrentUpdate
}

// Delete removes the team (creator-only) and resyncs every former member's
// mirror and the creator's teams_created tally.
func (s *Store) Delete(ctx context.Context, teamID, callerID primitive.ObjectID) error {
	t, err := s.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if err := teampolicy.CanManage(&t, callerID); err != nil {
		return err
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": teamID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return faults.NotFound("team not found")
	}

	for _, m := range t.Members {
		s.mirrorUser(ctx, m.UserID)
	}
	return nil
}

// AddContributedHours credits approved volunteer hours to every team the
// volunteer belongs to. Best-effort mirror; callers log failures.
func (s *Store) AddContributedHours(ctx context.Context, teamIDs []primitive.ObjectID, hours float64) error {
	if len(teamIDs) == 0 || hours <= 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": teamIDs}},
		bson.M{
			"$inc": bson.M{"hours_contributed": hours, "version": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// ListMine returns the teams the user is a member of.
func (s *Store) ListMine(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	return s.list(ctx, bson.M{"members.user_id": userID},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// ListPublic returns all public teams ordered by name.
func (s *Store) ListPublic(ctx context.Context) ([]models.Team, error) {
	return s.list(ctx, bson.M{"is_public": true},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// Leaderboard returns the top teams by contributed hours, ties broken by
// member count.
func (s *Store) Leaderboard(ctx context.Context, limit int64) ([]models.Team, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.list(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{
				{Key: "hours_contributed", Value: -1},
				{Key: "member_count", Value: -1},
				{Key: "_id", Value: 1},
			}).
			SetLimit(limit))
}

func (s *Store) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	teams := []models.Team{}
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// replaceMembers writes the member list and its derived count in one
// version-guarded update. Reports whether the guard matched.
func (s *Store) replaceMembers(ctx context.Context, teamID primitive.ObjectID, version int64, members []models.TeamMember, now time.Time) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": teamID, "version": version},
		bson.M{
			"$set": bson.M{
				"members":      members,
				"member_count": reconcile.MemberCount(members),
				"updated_at":   now,
			},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// mirrorUser is the second, non-atomic step of a mirrored write. A failure
// leaves the user's mirror stale; the reconciler repairs it later.
func (s *Store) mirrorUser(ctx context.Context, userID primitive.ObjectID) {
	if err := s.rec.SyncUser(ctx, userID); err != nil {
		s.log.Warn("partial write: user mirror not updated",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
	}
}
