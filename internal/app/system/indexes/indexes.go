// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureTeams(ctx, db); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureHelpRequests(ctx, db); err != nil {
		problems = append(problems, "help_requests: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	var errs []string
	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok && sameBoolPtr(desiredUnique, ex.Unique) {
			zap.L().Info("reusing existing index",
				zap.String("collection", coll.Name()),
				zap.String("name", ex.Name),
				zap.String("keys", desiredSig))
			continue
		} else if ok {
			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One account per email (case/diacritics folded via email_ci)
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
		// Leaderboards: top points / top hours
		{
			Keys:    bson.D{{Key: "points", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_points__id"),
		},
		{
			Keys:    bson.D{{Key: "volunteer_hours", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_hours__id"),
		},
		// Reviewer queue: find users with entries in a given status
		{
			Keys:    bson.D{{Key: "pending_hours.status", Value: 1}},
			Options: options.Index().SetName("idx_users_pendingstatus"),
		},
	})
}

func ensureTeams(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("teams")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// No duplicate team names (case/diacritics folded via name_ci)
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_teams_nameci"),
		},
		// Membership lookups and per-user team mirrors
		{
			Keys:    bson.D{{Key: "members.user_id", Value: 1}},
			Options: options.Index().SetName("idx_teams_member_user"),
		},
		// Creator tallies
		{
			Keys:    bson.D{{Key: "creator", Value: 1}},
			Options: options.Index().SetName("idx_teams_creator"),
		},
		// Leaderboard: largest public teams first
		{
			Keys: bson.D{
				{Key: "is_public", Value: 1},
				{Key: "member_count", Value: -1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_teams_public_membercount__id"),
		},
		// Cause browsing
		{
			Keys:    bson.D{{Key: "cause", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_teams_cause_nameci"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Upcoming-events listing
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_events_date__id"),
		},
		// Participant lookups and per-user joined mirrors
		{
			Keys:    bson.D{{Key: "participants", Value: 1}},
			Options: options.Index().SetName("idx_events_participants"),
		},
		// Creator tallies
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_events_createdby"),
		},
		// Category browsing with date ordering
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_events_category_date"),
		},
	})
}

func ensureHelpRequests(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("help_requests")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Urgency-first browsing, newest within urgency
		{
			Keys:    bson.D{{Key: "urgency_level", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_help_urgency_created"),
		},
		// Helper lookups and offered tallies
		{
			Keys:    bson.D{{Key: "helpers", Value: 1}},
			Options: options.Index().SetName("idx_help_helpers"),
		},
		// Creator tallies
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_help_createdby"),
		},
		// Category browsing
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_help_category_created"),
		},
	})
}
