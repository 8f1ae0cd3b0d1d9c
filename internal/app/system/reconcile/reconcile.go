// internal/app/system/reconcile/reconcile.go

// Package reconcile is the single writer for every denormalized counter in
// the system. Stores call the pure recomputation helpers when they rewrite
// a backing list so the stored counter always equals the list length, and
// the Reconciler recomputes per-user tallies and mirror sets from the
// backing collections to detect and repair drift left by failed mirrored
// writes.
package reconcile

import (
	"context"
	"fmt"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/* ------------------------------ pure helpers ------------------------------ */

// MemberCount recomputes a team's member_count from its member list.
func MemberCount(members []models.TeamMember) int64 {
	return int64(len(members))
}

// OfferCount recomputes a help request's offers from its helper list.
func OfferCount(helpers []primitive.ObjectID) int64 {
	return int64(len(helpers))
}

// EventsCount recomputes a team's events_count from its event list.
func EventsCount(events []primitive.ObjectID) int64 {
	return int64(len(events))
}

/* ------------------------------- reconciler ------------------------------- */

// Reconciler audits and repairs derived fields across the four aggregate
// collections. It is used after partial multi-aggregate writes and as a
// consistency oracle in tests.
type Reconciler struct {
	users *mongo.Collection
	teams *mongo.Collection
	events *mongo.Collection
	help  *mongo.Collection
	log   *zap.Logger
}

// New builds a Reconciler over the given database.
func New(db *mongo.Database, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		users:  db.Collection("users"),
		teams:  db.Collection("teams"),
		events: db.Collection("events"),
		help:   db.Collection("help_requests"),
		log:    logger,
	}
}

// UserDerived holds everything on a user document that is derivable from
// the backing collections.
type UserDerived struct {
	EventsCreated int64
	TeamsCreated  int64
	HelpRequested int64
	HelpOffered   int64
	EventsJoined  []primitive.ObjectID
	Teams         []primitive.ObjectID
}

// ComputeUser recomputes a user's tallies and mirror sets from the events,
// teams and help_requests collections.
func (r *Reconciler) ComputeUser(ctx context.Context, userID primitive.ObjectID) (UserDerived, error) {
	var d UserDerived

	n, err := r.events.CountDocuments(ctx, bson.M{"created_by": userID})
	if err != nil {
		return d, fmt.Errorf("count events created: %w", err)
	}
	d.EventsCreated = n

	n, err = r.teams.CountDocuments(ctx, bson.M{"creator": userID})
	if err != nil {
		return d, fmt.Errorf("count teams created: %w", err)
	}
	d.TeamsCreated = n

	n, err = r.help.CountDocuments(ctx, bson.M{"created_by": userID})
	if err != nil {
		return d, fmt.Errorf("count help requested: %w", err)
	}
	d.HelpRequested = n

	n, err = r.help.CountDocuments(ctx, bson.M{"helpers": userID})
	if err != nil {
		return d, fmt.Errorf("count help offered: %w", err)
	}
	d.HelpOffered = n

	d.EventsJoined, err = r.collectIDs(ctx, r.events, bson.M{"participants": userID})
	if err != nil {
		return d, fmt.Errorf("collect joined events: %w", err)
	}

	d.Teams, err = r.collectIDs(ctx, r.teams, bson.M{"members.user_id": userID})
	if err != nil {
		return d, fmt.Errorf("collect teams: %w", err)
	}

	return d, nil
}

func (r *Reconciler) collectIDs(ctx context.Context, c *mongo.Collection, filter bson.M) ([]primitive.ObjectID, error) {
	cur, err := c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []primitive.ObjectID{}
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID)
	}
	return ids, cur.Err()
}

// SyncUser unconditionally rewrites a user's derived fields from the
// backing collections. Stores call it as the second step of a mirrored
// write; a failure here leaves the user document stale but repairable.
func (r *Reconciler) SyncUser(ctx context.Context, userID primitive.ObjectID) error {
	d, err := r.ComputeUser(ctx, userID)
	if err != nil {
		return err
	}
	_, err = r.users.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"events_created": d.EventsCreated,
			"teams_created":  d.TeamsCreated,
			"help_requested": d.HelpRequested,
			"help_offered":   d.HelpOffered,
			"events_joined":  d.EventsJoined,
			"teams":          d.Teams,
		},
		"$inc": bson.M{"version": 1},
	})
	return err
}

// RepairUser rewrites a user's derived fields from the backing collections.
// It reports whether anything had drifted.
func (r *Reconciler) RepairUser(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	var u models.User
	if err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&u); err != nil {
		return false, err
	}

	d, err := r.ComputeUser(ctx, userID)
	if err != nil {
		return false, err
	}

	drifted := u.EventsCreated != d.EventsCreated ||
		u.TeamsCreated != d.TeamsCreated ||
		u.HelpRequested != d.HelpRequested ||
		u.HelpOffered != d.HelpOffered ||
		!sameIDSet(u.EventsJoined, d.EventsJoined) ||
		!sameIDSet(u.Teams, d.Teams)
	if !drifted {
		return false, nil
	}

	r.log.Warn("repairing drifted user document",
		zap.String("user_id", userID.Hex()))

	_, err = r.users.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"events_created": d.EventsCreated,
			"teams_created":  d.TeamsCreated,
			"help_requested": d.HelpRequested,
			"help_offered":   d.HelpOffered,
			"events_joined":  d.EventsJoined,
			"teams":          d.Teams,
		},
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RepairTeam rewrites a team's member_count and events_count from its
// embedded lists. It reports whether either count had drifted.
func (r *Reconciler) RepairTeam(ctx context.Context, teamID primitive.ObjectID) (bool, error) {
	var t models.Team
	if err := r.teams.FindOne(ctx, bson.M{"_id": teamID}).Decode(&t); err != nil {
		return false, err
	}

	want := MemberCount(t.Members)
	wantEvents := EventsCount(t.Events)
	if t.MemberCount == want && t.EventsCount == wantEvents {
		return false, nil
	}

	r.log.Warn("repairing drifted team counters",
		zap.String("team_id", teamID.Hex()),
		zap.Int64("stored_member_count", t.MemberCount),
		zap.Int64("actual_member_count", want))

	_, err := r.teams.UpdateByID(ctx, teamID, bson.M{
		"$set": bson.M{"member_count": want, "events_count": wantEvents},
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RepairHelpRequest rewrites a request's offers from its helper list.
func (r *Reconciler) RepairHelpRequest(ctx context.Context, requestID primitive.ObjectID) (bool, error) {
	var h models.HelpRequest
	if err := r.help.FindOne(ctx, bson.M{"_id": requestID}).Decode(&h); err != nil {
		return false, err
	}

	want := OfferCount(h.Helpers)
	if h.Offers == want {
		return false, nil
	}

	r.log.Warn("repairing drifted help request counter",
		zap.String("request_id", requestID.Hex()),
		zap.Int64("stored_offers", h.Offers),
		zap.Int64("actual_offers", want))

	_, err := r.help.UpdateByID(ctx, requestID, bson.M{
		"$set": bson.M{"offers": want},
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RepairAll sweeps every aggregate and repairs whatever drifted. Intended
// for an operational pass after an incident, not the request path.
func (r *Reconciler) RepairAll(ctx context.Context) (int, error) {
	repaired := 0

	teamIDs, err := r.collectIDs(ctx, r.teams, bson.M{})
	if err != nil {
		return repaired, err
	}
	for _, id := range teamIDs {
		did, err := r.RepairTeam(ctx, id)
		if err != nil {
			return repaired, err
		}
		if did {
			repaired++
		}
	}

	reqIDs, err := r.collectIDs(ctx, r.help, bson.M{})
	if err != nil {
		return repaired, err
	}
	for _, id := range reqIDs {
		did, err := r.RepairHelpRequest(ctx, id)
		if err != nil {
			return repaired, err
		}
		if did {
			repaired++
		}
	}

	userIDs, err := r.collectIDs(ctx, r.users, bson.M{})
	if err != nil {
		return repaired, err
	}
	for _, id := range userIDs {
		did, err := r.RepairUser(ctx, id)
		if err != nil {
			return repaired, err
		}
		if did {
			repaired++
		}
	}

	return repaired, nil
}

// sameIDSet compares two ID lists as sets (mirror order is not meaningful).
func sameIDSet(a, b []primitive.ObjectID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[primitive.ObjectID]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
		if seen[id] < 0 {
			return false
		}
	}
	return true
}
