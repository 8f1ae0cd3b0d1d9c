// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/policy/eventpolicy"
	"github.com/dalemusser/volunteerhub/internal/app/system/reconcile"
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const maxRetries = 3

var ErrConcurrentUpdate = faults.Conflict("the event was modified concurrently, please retry")

type Store struct {
	c   *mongo.Collection
	rec *reconcile.Reconciler
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		c:   db.Collection("events"),
		rec: reconcile.New(db, logger),
		log: logger,
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Event{}, faults.NotFound("event not found")
		}
		return models.Event{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	if err := eventpolicy.ValidateNew(&e); err != nil {
		return models.Event{}, err
	}

	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.TitleCI = text.Fold(e.Title)
	e.Participants = []primitive.ObjectID{}
	e.Version = 1
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}

	s.mirrorUser(ctx, e.CreatedBy)
	return e, nil
}

// Join registers the user for the event. Capacity and duplicate checks run
// against the participant list being replaced; a concurrent fill makes the
// version guard miss and the next attempt sees the event as full.
func (s *Store) Join(ctx context.Context, eventID, userID primitive.ObjectID) (models.Event, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		e, err := s.GetByID(ctx, eventID)
		if err != nil {
			return models.Event{}, err
		}
		if err := eventpolicy.CanJoin(&e, userID); err != nil {
			return models.Event{}, err
		}

		participants := append(append([]primitive.ObjectID{}, e.Participants...), userID)

		ok, err := s.replaceParticipants(ctx, eventID, e.Version, participants)
		if err != nil {
			return models.Event{}, err
		}
		if ok {
			e.Participants = participants
			e.Version++
			s.mirrorUser(ctx, userID)
			return e, nil
		}
	}
	return models.Event{}, ErrConcurrentUpdate
}

// Leave withdraws the user's registration.
func (s *Store) Leave(ctx context.Context, eventID, userID primitive.ObjectID) (models.Event, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		e, err := s.GetByID(ctx, eventID)
		if err != nil {
			return models.Event{}, err
		}
		if err := eventpolicy.CanLeave(&e, userID); err != nil {
			return models.Event{}, err
		}

		participants := make([]primitive.ObjectID, 0, len(e.Participants)-1)
		for _, id := range e.Participants {
			if id != userID {
				participants = append(participants, id)
			}
		}

		ok, err := s.replaceParticipants(ctx, eventID, e.Version, participants)
		if err != nil {
			return models.Event{}, err
		}
		if ok {
			e.Participants = participants
			e.Version++
			s.mirrorUser(ctx, userID)
			return e, nil
		}
	}
	return models.Event{}, ErrConcurrentUpdate
}

// Update holds the mutable event fields. Nil pointers leave a field as is.
type Update struct {
	Title           *string
	Description     *string
	Category        *string
	Date            *time.Time
	StartTime       *string
	EndTime         *string
	Location        *string
	MaxParticipants *int64
	Requirements    *string
	Image           *string
}

// UpdateInfo applies creator-only edits under a version guard. Capacity
// may not drop below the current registration count.
func (s *Store) UpdateInfo(ctx context.Context, eventID, callerID primitive.ObjectID, upd Update) (models.Event, error) {
	if upd.Title != nil && *upd.Title == "" {
		return models.Event{}, faults.Validation("event title is required")
	}
	if upd.MaxParticipants != nil && *upd.MaxParticipants <= 0 {
		return models.Event{}, faults.Validation("max participants must be greater than zero")
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		e, err := s.GetByID(ctx, eventID)
		if err != nil {
			return models.Event{}, err
		}
		if err := eventpolicy.CanManage(&e, callerID); err != nil {
			return models.Event{}, err
		}
		if upd.MaxParticipants != nil && *upd.MaxParticipants < int64(len(e.Participants)) {
			return models.Event{}, faults.Validation("max participants cannot be below the current registration count")
		}

		set := bson.M{"updated_at": time.Now().UTC()}
		if upd.Title != nil {
			set["title"] = *upd.Title
			set["title_ci"] = text.Fold(*upd.Title)
		}
		if upd.Description != nil {
			set["description"] = *upd.Description
		}
		if upd.Category != nil {
			set["category"] = *upd.Category
		}
		if upd.Date != nil {
			set["date"] = *upd.Date
		}
		if upd.StartTime != nil {
			set["start_time"] = *upd.StartTime
		}
		if upd.EndTime != nil {
			set["end_time"] = *upd.EndTime
		}
		if upd.Location != nil {
			set["location"] = *upd.Location
		}
		if upd.MaxParticipants != nil {
			set["max_participants"] = *upd.MaxParticipants
		}
		if upd.Requirements != nil {
			set["requirements"] = *upd.Requirements
		}
		if upd.Image != nil {
			set["image"] = *upd.Image
		}

		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": eventID, "version": e.Version},
			bson.M{"$set": set, "$inc": bson.M{"version": 1}})
		if err != nil {
			return models.Event{}, err
		}
		if res.ModifiedCount == 1 {
			return s.GetByID(ctx, eventID)
		}
	}
	return models.Event{}, ErrConcurrentUpdate
}

// Delete removes the event (creator-only) and resyncs every participant's
// mirror and the creator's events_created tally.
func (s *Store) Delete(ctx context.Context, eventID, callerID primitive.ObjectID) error {
	e, err := s.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := eventpolicy.CanManage(&e, callerID); err != nil {
		return err
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": eventID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return faults.NotFound("event not found")
	}

	s.mirrorUser(ctx, e.CreatedBy)
	for _, p := range e.Participants {
		if p != e.CreatedBy {
			s.mirrorUser(ctx, p)
		}
	}
	return nil
}

// List returns events ordered by date, soonest first.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) replaceParticipants(ctx context.Context, eventID primitive.ObjectID, version int64, participants []primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": eventID, "version": version},
		bson.M{
			"$set": bson.M{
				"participants": participants,
				"updated_at":   time.Now().UTC(),
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
