package admins

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	// Add inserts the admin unless the email is already present
	// (case-insensitive). Returns true when a new entry was created.
	Add(ctx context.Context, admin AdminUser) (bool, error)
	Remove(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]AdminUser, error)
}

// adminDoc keys the document by the lowercased email, so duplicate
// detection needs no collation tricks: a second insert for the same
// address in any casing hits the same _id.
type adminDoc struct {
	ID      string    `bson:"_id"`
	Email   string    `bson:"email"`
	AddedBy string    `bson:"added_by,omitempty"`
	AddedAt time.Time `bson:"added_at,omitempty"`
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Add(ctx context.Context, admin AdminUser) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(admin.Email))

	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":      key,
			"email":    strings.TrimSpace(admin.Email),
			"added_by": admin.AddedBy,
			"added_at": admin.AddedAt,
		},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoRepository) Remove(ctx context.Context, email string) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]AdminUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]AdminUser, 0)
	for cursor.Next(ctx) {
		var doc adminDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, AdminUser{
			Email:   doc.Email,
			AddedBy: doc.AddedBy,
			AddedAt: doc.AddedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
