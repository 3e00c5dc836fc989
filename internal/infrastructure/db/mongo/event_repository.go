package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/ports"
)

const collectionEvents = "events"

// EventRepository implements ports.EventRepository on the events collection.
// Roster mutations are single-document updates, so each one is atomic.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type scheduleDocument struct {
	StartDate string `bson:"start_date"`
	StartTime string `bson:"start_time"`
	EndDate   string `bson:"end_date,omitempty"`
	EndTime   string `bson:"end_time,omitempty"`
}

type participantDocument struct {
	UserID     string   `bson:"user_id"`
	Tags       []string `bson:"tags"`
	DuePayment float64  `bson:"due_payment"`
	PaidAmount float64  `bson:"paid_amount"`
}

type eventDocument struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	Organizers   []string              `bson:"organizers"`
	Locations    []string              `bson:"locations"`
	Description  string                `bson:"description"`
	Schedule     scheduleDocument      `bson:"schedule"`
	Images       []string              `bson:"images"`
	Notes        []string              `bson:"notes"`
	Participants []participantDocument `bson:"participants"`
	CreatedAt    time.Time             `bson:"created_at"`
	UpdatedAt    *time.Time            `bson:"updated_at,omitempty"`
}

func toScheduleDocument(s domain.Schedule) scheduleDocument {
	return scheduleDocument(s)
}

func toParticipantDocument(p domain.Participant) participantDocument {
	return participantDocument{
		UserID:     p.UserID,
		Tags:       orEmpty(p.Tags),
		DuePayment: p.DuePayment,
		PaidAmount: p.PaidAmount,
	}
}

func toParticipantDocuments(ps []domain.Participant) []participantDocument {
	out := make([]participantDocument, 0, len(ps))
	for _, p := range ps {
		out = append(out, toParticipantDocument(p))
	}
	return out
}

func toEventDocument(e *domain.Event) eventDocument {
	return eventDocument{
		Organizers:   orEmpty(e.Organizers),
		Locations:    orEmpty(e.Locations),
		Description:  e.Description,
		Schedule:     toScheduleDocument(e.Schedule),
		Images:       orEmpty(e.Images),
		Notes:        orEmpty(e.Notes),
		Participants: toParticipantDocuments(e.Participants),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (d eventDocument) toDomain() *domain.Event {
	participants := make([]domain.Participant, 0, len(d.Participants))
	for _, p := range d.Participants {
		participants = append(participants, domain.Participant{
			UserID:     p.UserID,
			Tags:       orEmpty(p.Tags),
			DuePayment: p.DuePayment,
			PaidAmount: p.PaidAmount,
		})
	}
	return &domain.Event{
		ID:           d.ID.Hex(),
		Organizers:   orEmpty(d.Organizers),
		Locations:    orEmpty(d.Locations),
		Description:  d.Description,
		Schedule:     domain.Schedule(d.Schedule),
		Images:       orEmpty(d.Images),
		Notes:        orEmpty(d.Notes),
		Participants: participants,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    utcPtr(d.UpdatedAt),
	}
}

// patchSet translates the fields present in p into a $set document.
func patchSet(p domain.EventPatch) bson.M {
	set := bson.M{"updated_at": p.UpdatedAt}
	if p.Organizers != nil {
		set["organizers"] = orEmpty(*p.Organizers)
	}
	if p.Locations != nil {
		set["locations"] = orEmpty(*p.Locations)
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Schedule != nil {
		set["schedule"] = toScheduleDocument(*p.Schedule)
	}
	if p.Images != nil {
		set["images"] = orEmpty(*p.Images)
	}
	if p.Notes != nil {
		set["notes"] = orEmpty(*p.Notes)
	}
	if p.Participants != nil {
		set["participants"] = toParticipantDocuments(*p.Participants)
	}
	return set
}

func eventFilter(f ports.EventFilter) bson.M {
	switch {
	case f.Organizer != "":
		return bson.M{"organizers": f.Organizer}
	case f.Location != "":
		return bson.M{"locations": f.Location}
	default:
		return bson.M{}
	}
}

func (r *EventRepository) Insert(ctx context.Context, e *domain.Event) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toEventDocument(e))
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return objectIDHex(res.InsertedID), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc eventDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return doc.toDomain(), nil
}

// Find returns events in insertion order.
func (r *EventRepository) Find(ctx context.Context, f ports.EventFilter, skip, limit int64) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, eventFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]*domain.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) (int64, error) {
	return r.updateOne(ctx, id, nil, bson.M{"$set": patchSet(patch)})
}

func (r *EventRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete event: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *EventRepository) PushParticipant(ctx context.Context, id string, p domain.Participant, updatedAt time.Time) (int64, error) {
	return r.updateOne(ctx, id, nil, bson.M{
		"$push": bson.M{"participants": toParticipantDocument(p)},
		"$set":  bson.M{"updated_at": updatedAt},
	})
}

// PullParticipant only matches events that hold an entry for userID, so a
// repeated removal modifies nothing.
func (r *EventRepository) PullParticipant(ctx context.Context, id, userID string, updatedAt time.Time) (int64, error) {
	return r.updateOne(ctx, id, bson.M{"participants.user_id": userID}, bson.M{
		"$pull": bson.M{"participants": bson.M{"user_id": userID}},
		"$set":  bson.M{"updated_at": updatedAt},
	})
}

func (r *EventRepository) SetParticipantPaid(ctx context.Context, id, userID string, paidAmount float64, updatedAt time.Time) (int64, error) {
	return r.updateOne(ctx, id, bson.M{"participants.user_id": userID}, bson.M{
		"$set": bson.M{
			"participants.$.paid_amount": paidAmount,
			"updated_at":                 updatedAt,
		},
	})
}

// updateOne runs update against the event with the given id, narrowed by
// extra, and returns the modified count. A malformed id modifies nothing.
func (r *EventRepository) updateOne(ctx context.Context, id string, extra bson.M, update bson.M) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	filter := bson.M{"_id": oid}
	for k, v := range extra {
		filter[k] = v
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("update event %s: %w", id, err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the multikey indexes used by the list filters.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "organizers", Value: 1}}},
		{Keys: bson.D{{Key: "locations", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
