package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventify/eventify/internal/core/domain"
)

const auditCollection = "auth_audit"

// MongoAuditRepository is an append-only log of authentication activity.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	Actor  string `bson:"actor,omitempty"`
	Action string `bson:"action"`
	Detail string `bson:"detail,omitempty"`
	At     int64  `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := mongoAuditEntry{
		Actor:  entry.Actor,
		Action: entry.Action,
		Detail: entry.Detail,
		At:     entry.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
