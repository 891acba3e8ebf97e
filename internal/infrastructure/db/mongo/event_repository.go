package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventify/eventify/internal/core/domain"
)

const eventCollection = "events"

type MongoEventRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{db: db, coll: db.Collection(eventCollection)}
}

type mongoEvent struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description,omitempty"`
	Location    string `bson:"location,omitempty"`
	DateTime    int64  `bson:"date_time"`
	Capacity    *int64 `bson:"capacity,omitempty"`
	OrganizerID int64  `bson:"organizer_id"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (r *MongoEventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	id, err := nextID(ctx, r.db, eventCollection)
	if err != nil {
		return nil, err
	}

	doc := toMongoEvent(event)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *event
	created.ID = id
	return &created, nil
}

func (r *MongoEventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return toEvent(&me), nil
}

func (r *MongoEventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoEventRepository) FindAfter(ctx context.Context, after time.Time) ([]domain.Event, error) {
	return r.findMany(ctx, bson.M{"date_time": bson.M{"$gt": after.Unix()}})
}

func (r *MongoEventRepository) FindByOrganizerID(ctx context.Context, organizerID int64) ([]domain.Event, error) {
	return r.findMany(ctx, bson.M{"organizer_id": organizerID})
}

func (r *MongoEventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	doc := toMongoEvent(event)
	doc.ID = event.ID

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": event.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (r *MongoEventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *MongoEventRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Event, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.Event
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, *toEvent(&me))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func toMongoEvent(e *domain.Event) mongoEvent {
	return mongoEvent{
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		DateTime:    e.DateTime.Unix(),
		Capacity:    e.Capacity,
		OrganizerID: e.OrganizerID,
		CreatedAt:   e.CreatedAt.Unix(),
		UpdatedAt:   e.UpdatedAt.Unix(),
	}
}

func toEvent(me *mongoEvent) *domain.Event {
	return &domain.Event{
		ID:          me.ID,
		Title:       me.Title,
		Description: me.Description,
		Location:    me.Location,
		DateTime:    unixToTime(me.DateTime),
		Capacity:    me.Capacity,
		OrganizerID: me.OrganizerID,
		CreatedAt:   unixToTime(me.CreatedAt),
		UpdatedAt:   unixToTime(me.UpdatedAt),
	}
}
