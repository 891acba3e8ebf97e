package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventify/eventify/internal/core/domain"
)

const registrationCollection = "registrations"

type MongoRegistrationRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *MongoRegistrationRepository {
	return &MongoRegistrationRepository{db: db, coll: db.Collection(registrationCollection)}
}

type mongoRegistration struct {
	ID           int64  `bson:"_id"`
	UserID       int64  `bson:"user_id"`
	EventID      int64  `bson:"event_id"`
	Status       string `bson:"status"`
	RegisteredAt int64  `bson:"registered_at"`
}

// EnsureIndexes creates the unique (user_id, event_id) index. Call once at startup.
func (r *MongoRegistrationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("registration indexes: %w", err)
	}
	return nil
}

func (r *MongoRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	id, err := nextID(ctx, r.db, registrationCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoRegistration{
		ID:           id,
		UserID:       reg.UserID,
		EventID:      reg.EventID,
		Status:       reg.Status,
		RegisteredAt: reg.RegisteredAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRegistrationExists
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	created := *reg
	created.ID = id
	return &created, nil
}

func (r *MongoRegistrationRepository) FindByUserID(ctx context.Context, userID int64) ([]domain.Registration, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	defer cur.Close(ctx)

	var regs []domain.Registration
	for cur.Next(ctx) {
		var mr mongoRegistration
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		regs = append(regs, *toRegistration(&mr))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return regs, nil
}

func (r *MongoRegistrationRepository) FindByUserAndEvent(ctx context.Context, userID, eventID int64) (*domain.Registration, error) {
	var mr mongoRegistration
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "event_id": eventID}).Decode(&mr)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return toRegistration(&mr), nil
}

func (r *MongoRegistrationRepository) CountByEventID(ctx context.Context, eventID int64) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *MongoRegistrationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *MongoRegistrationRepository) DeleteByEventID(ctx context.Context, eventID int64) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
		return fmt.Errorf("delete registrations for event: %w", err)
	}
	return nil
}

func toRegistration(mr *mongoRegistration) *domain.Registration {
	return &domain.Registration{
		ID:           mr.ID,
		UserID:       mr.UserID,
		EventID:      mr.EventID,
		Status:       mr.Status,
		RegisteredAt: unixToTime(mr.RegisteredAt),
	}
}
