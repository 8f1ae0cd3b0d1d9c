// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/points"
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxRetries = 3

var (
	ErrDuplicateEmail   = faults.Conflict("an account with this email already exists")
	ErrConcurrentUpdate = faults.Conflict("the profile was modified concurrently, please retry")
)

type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{c: db.Collection("users"), log: logger}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, faults.NotFound("user not found")
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by folded email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, faults.NotFound("user not found")
		}
		return models.User{}, err
	}
	return u, nil
}

// Create inserts a new account with zeroed counters and empty mirrors.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.EmailCI = text.Fold(u.Email)
	if u.Skills == nil {
		u.Skills = []string{}
	}
	if u.Causes == nil {
		u.Causes = []string{}
	}
	u.VolunteerHours = 0
	u.Points = 0
	u.EventsCreated = 0
	u.TeamsCreated = 0
	u.HelpRequested = 0
	u.HelpOffered = 0
	u.PendingHours = []models.PendingHourEntry{}
	u.Certificates = []models.Certificate{}
	u.EventsJoined = []primitive.ObjectID{}
	u.Teams = []primitive.ObjectID{}
	u.Version = 1
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the caller-editable profile fields. Nil pointers
// leave a field as is.
type ProfileUpdate struct {
	Name   *string
	Email  *string
	Skills *[]string
	Causes *[]string
}

// UpdateProfile applies profile edits under a version guard.
func (s *Store) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (models.User, error) {
	if upd.Name != nil && *upd.Name == "" {
		return models.User{}, faults.Validation("name is required")
	}
	if upd.Email != nil && *upd.Email == "" {
		return models.User{}, faults.Validation("email is required")
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		u, err := s.GetByID(ctx, userID)
		if err != nil {
			return models.User{}, err
		}

		set := bson.M{"updated_at": time.Now().UTC()}
		if upd.Name != nil {
			set["name"] = *upd.Name
		}
		if upd.Email != nil {
			set["email"] = *upd.Email
			set["email_ci"] = text.Fold(*upd.Email)
		}
		if upd.Skills != nil {
			set["skills"] = *upd.Skills
		}
		if upd.Causes != nil {
			set["causes"] = *upd.Causes
		}

		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": userID, "version": u.Version},
			bson.M{"$set": set, "$inc": bson.M{"version": 1}})
		if err != nil {
			if wafflemongo.IsDup(err) {
				return models.User{}, ErrDuplicateEmail
			}
			return models.User{}, err
		}
		if res.ModifiedCount == 1 {
			return s.GetByID(ctx, userID)
		}
	}
	return models.User{}, ErrConcurrentUpdate
}

// SubmitHours appends a pending hour entry for a completed event. Whether
// the user actually participated is checked by the caller against the
// event aggregate.
func (s *Store) SubmitHours(ctx context.Context, userID, eventID primitive.ObjectID, hours float64, date time.Time) (models.PendingHourEntry, error) {
	if hours <= 0 {
		return models.PendingHourEntry{}, faults.Validation("hours must be greater than zero")
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	entry := models.PendingHourEntry{
		ID:            primitive.NewObjectID(),
		EventID:       eventID,
		Hours:         hours,
		Date:          date,
		Status:        models.HourStatusPending,
		Verifications: []primitive.ObjectID{},
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		u, err := s.GetByID(ctx, userID)
		if err != nil {
			return models.PendingHourEntry{}, err
		}

		pending := append(append([]models.PendingHourEntry{}, u.PendingHours...), entry)
		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": userID, "version": u.Version},
			bson.M{
				"$set": bson.M{"pending_hours": pending, "updated_at": time.Now().UTC()},
				"$inc": bson.M{"version": 1},
			})
		if err != nil {
			return models.PendingHourEntry{}, err
		}
		if res.ModifiedCount == 1 {
			return entry, nil
		}
	}
	return models.PendingHourEntry{}, ErrConcurrentUpdate
}

// ListPendingReviews returns users that have at least one pending hour
// entry, for the reviewer queue.
func (s *Store) ListPendingReviews(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"pending_hours.status": models.HourStatusPending})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveHours moves a pending entry to approved, credits hours and
// points, records the reviewer, and awards any milestone certificates the
// new total crosses. The entry status, counters and certificates change in
// one version-guarded write, so the credit is applied exactly once: a
// concurrent or repeated approval sees the terminal entry and gets a
// conflict.
func (s *Store) ApproveHours(ctx context.Context, userID, entryID, reviewerID primitive.ObjectID) (models.User, []models.Certificate, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		u, err := s.GetByID(ctx, userID)
		if err != nil {
			return models.User{}, nil, err
		}
		entry := u.PendingHourByID(entryID)
		if entry == nil {
			return models.User{}, nil, faults.NotFound("hours entry not found")
		}
		if entry.Status != models.HourStatusPending {
			return models.User{}, nil, faults.Conflict(fmt.Sprintf("hours entry already %s", entry.Status))
		}

		now := time.Now().UTC()
		pending := make([]models.PendingHourEntry, len(u.PendingHours))
		copy(pending, u.PendingHours)
		for i := range pending {
			if pending[i].ID == entryID {
				pending[i].Status = models.HourStatusApproved
				pending[i].Verifications = append(
					append([]primitive.ObjectID{}, pending[i].Verifications...), reviewerID)
			}
		}

		newHours := u.VolunteerHours + entry.Hours
		newPoints := u.Points + points.ForHours(entry.Hours)
		earned := points.NewCertificates(u.VolunteerHours, newHours, now)
		certs := append(append([]models.Certificate{}, u.Certificates...), earned...)

		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": userID, "version": u.Version},
			bson.M{
				"$set": bson.M{
					"pending_hours":   pending,
					"volunteer_hours": newHours,
					"points":          newPoints,
					"certificates":    certs,
					"updated_at":      now,
				},
				"$inc": bson.M{"version": 1},
			})
		if err != nil {
			return models.User{}, nil, err
		}
		if res.ModifiedCount == 1 {
			u.PendingHours = pending
			u.VolunteerHours = newHours
			u.Points = newPoints
			u.Certificates = certs
			u.Version++
			u.UpdatedAt = now
			return u, earned, nil
		}
	}
	return models.User{}, nil, ErrConcurrentUpdate
}

// RejectHours moves a pending entry to rejected and records the reviewer.
// No hours or points are credited, and a terminal entry stays terminal.
func (s *Store) RejectHours(ctx context.Context, userID, entryID, reviewerID primitive.ObjectID) (models.User, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		u, err := s.GetByID(ctx, userID)
		if err != nil {
			return models.User{}, err
		}
		entry := u.PendingHourByID(entryID)
		if entry == nil {
			return models.User{}, faults.NotFound("hours entry not found")
		}
		if entry.Status != models.HourStatusPending {
			return models.User{}, faults.Conflict(fmt.Sprintf("hours entry already %s", entry.Status))
		}

		now := time.Now().UTC()
		pending := make([]models.PendingHourEntry, len(u.PendingHours))
		copy(pending, u.PendingHours)
		for i := range pending {
			if pending[i].ID == entryID {
				pending[i].Status = models.HourStatusRejected
				pending[i].Verifications = append(
					append([]primitive.ObjectID{}, pending[i].Verifications...), reviewerID)
			}
		}

		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": userID, "version": u.Version},
			bson.M{
				"$set": bson.M{"pending_hours": pending, "updated_at": now},
				"$inc": bson.M{"version": 1},
			})
		if err != nil {
			return models.User{}, err
		}
		if res.ModifiedCount == 1 {
			u.PendingHours = pending
			u.Version++
			u.UpdatedAt = now
			return u, nil
		}
	}
	return models.User{}, ErrConcurrentUpdate
}
