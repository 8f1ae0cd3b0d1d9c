// internal/app/store/help/helpstore.go
package helpstore

import (
	"context"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/policy/helppolicy"
	"github.com/dalemusser/volunteerhub/internal/app/system/reconcile"
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const maxRetries = 3

var ErrConcurrentUpdate = faults.Conflict("the help request was modified concurrently, please retry")

type Store struct {
	c   *mongo.Collection
	rec *reconcile.Reconciler
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		c:   db.Collection("help_requests"),
		rec: reconcile.New(db, logger),
		log: logger,
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.HelpRequest, error) {
	var h models.HelpRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.HelpRequest{}, faults.NotFound("help request not found")
		}
		return models.HelpRequest{}, err
	}
	return h, nil
}

func (s *Store) Create(ctx context.Context, h models.HelpRequest) (models.HelpRequest, error) {
	if err := helppolicy.ValidateNew(&h); err != nil {
		return models.HelpRequest{}, err
	}

	now := time.Now().UTC()
	h.ID = primitive.NewObjectID()
	if h.Urgency == "" {
		h.Urgency = models.UrgencyMedium
	}
	if h.Category == "" {
		h.Category = "general"
	}
	h.Helpers = []primitive.ObjectID{}
	h.Offers = 0
	h.Version = 1
	h.CreatedAt = now
	h.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, h); err != nil {
		return models.HelpRequest{}, err
	}

	s.mirrorUser(ctx, h.CreatedBy)
	return h, nil
}

// ToggleOffer flips the user's offer on the request: absent adds, present
// removes. The helper list and its offer count are rewritten together
// under a version guard, so toggling is idempotent per observed state and
// offers always equals len(helpers). Returns the request and whether the
// user has an active offer after the toggle.
func (s *Store) ToggleOffer(ctx context.Context, requestID, userID primitive.ObjectID) (models.HelpRequest, bool, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		h, err := s.GetByID(ctx, requestID)
		if err != nil {
			return models.HelpRequest{}, false, err
		}

		var helpers []primitive.ObjectID
		hasOffered := !h.HasHelper(userID)
		if hasOffered {
			helpers = append(append([]primitive.ObjectID{}, h.Helpers...), userID)
		} else {
			helpers = make([]primitive.ObjectID, 0, len(h.Helpers)-1)
			for _, id := range h.Helpers {
				if id != userID {
					helpers = append(helpers, id)
				}
			}
		}

		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": requestID, "version": h.Version},
			bson.M{
				"$set": bson.M{
					"helpers":    helpers,
					"offers":     reconcile.OfferCount(helpers),
					"updated_at": time.Now().UTC(),
				},
				"$inc": bson.M{"version": 1},
			})
		if err != nil {
			return models.HelpRequest{}, false, err
		}
		if res.ModifiedCount == 1 {
			h.Helpers = helpers
			h.Offers = reconcile.OfferCount(helpers)
			h.Version++
			s.mirrorUser(ctx, userID)
			return h, hasOffered, nil
		}
	}
	return models.HelpRequest{}, false, ErrConcurrentUpdate
}

// Update holds the mutable request fields. Nil pointers leave a field as is.
type Update struct {
	Title       *string
	Description *string
	Location    *string
	Urgency     *string
	Category    *string
	ContactInfo *string
}

// UpdateInfo applies creator-only edits under a version guard.
func (s *Store) UpdateInfo(ctx context.Context, requestID, callerID primitive.ObjectID, upd Update) (models.HelpRequest, error) {
	if upd.Urgency != nil && !models.ValidUrgency(*upd.Urgency) {
		return models.HelpRequest{}, faults.Validation("unknown urgency level")
	}
	if upd.Category != nil && !models.ValidHelpCategory(*upd.Category) {
		return models.HelpRequest{}, faults.Validation("unknown category")
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		h, err := s.GetByID(ctx, requestID)
		if err != nil {
			return models.HelpRequest{}, err
		}
		if err := helppolicy.CanManage(&h, callerID); err != nil {
			return models.HelpRequest{}, err
		}

		set := bson.M{"updated_at": time.Now().UTC()}
		if upd.Title != nil {
			set["title"] = *upd.Title
		}
		if upd.Description != nil {
			set["description"] = *upd.Description
		}
		if upd.Location != nil {
			set["location"] = *upd.Location
		}
		if upd.Urgency != nil {
			set["urgency_level"] = *upd.Urgency
		}
		if upd.Category != nil {
			set["category"] = *upd.Category
		}
		if upd.ContactInfo != nil {
			set["contact_info"] = *upd.ContactInfo
		}

		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": requestID, "version": h.Version},
			bson.M{"$set": set, "$inc": bson.M{"version": 1}})
		if err != nil {
			return models.HelpRequest{}, err
		}
		if res.ModifiedCount == 1 {
			return s.GetByID(ctx, requestID)
		}
	}
	return models.HelpRequest{}, ErrConcurrentUpdate
}

// Delete removes the request (creator-only) and resyncs the creator's and
// every helper's tallies.
func (s *Store) Delete(ctx context.Context, requestID, callerID primitive.ObjectID) error {
	h, err := s.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := helppolicy.CanManage(&h, callerID); err != nil {
		return err
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": requestID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return faults.NotFound("help request not found")
	}

	s.mirrorUser(ctx, h.CreatedBy)
	for _, id := range h.Helpers {
		if id != h.CreatedBy {
			s.mirrorUser(ctx, id)
		}
	}
	return nil
}

// List returns help requests, newest first.
func (s *Store) List(ctx context.Context) ([]models.HelpRequest, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reqs := []models.HelpRequest{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// mirrorUser is the second, non-atomic step of a mirrored write. A failure
// leaves the user's tallies stale; the reconciler repairs them later.
func (s *Store) mirrorUser(ctx context.Context, userID primitive.ObjectID) {
	if err := s.rec.SyncUser(ctx, userID); err != nil {
		s.log.Warn("partial write: user mirror not updated",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
	}
}
