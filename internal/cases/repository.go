package cases

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Insert(ctx context.Context, item VideoCase) error
	Replace(ctx context.Context, item VideoCase) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]VideoCase, error)
}

// caseDoc is the storage shape: identical to VideoCase except that the
// keyword list collapses into one comma-joined field, the format the
// library's spreadsheet column used.
type caseDoc struct {
	ID          string    `bson:"_id"`
	Category    string    `bson:"category"`
	Subcategory string    `bson:"subcategory,omitempty"`
	Region      string    `bson:"region"`
	RobotType   string    `bson:"robot_type"`
	ClientName  string    `bson:"client_name"`
	VideoURL    string    `bson:"video_url"`
	Rating      int       `bson:"rating"`
	Keywords    string    `bson:"keywords"`
	Description string    `bson:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toDoc(item VideoCase) caseDoc {
	return caseDoc{
		ID:          item.ID,
		Category:    item.Category,
		Subcategory: item.Subcategory,
		Region:      item.Region,
		RobotType:   item.RobotType,
		ClientName:  item.ClientName,
		VideoURL:    item.VideoURL,
		Rating:      item.Rating,
		Keywords:    JoinKeywords(item.Keywords),
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func fromDoc(doc caseDoc) VideoCase {
	return VideoCase{
		ID:          doc.ID,
		Category:    doc.Category,
		Subcategory: doc.Subcategory,
		Region:      doc.Region,
		RobotType:   doc.RobotType,
		ClientName:  doc.ClientName,
		VideoURL:    doc.VideoURL,
		Rating:      doc.Rating,
		Keywords:    SplitKeywords(doc.Keywords),
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Insert(ctx context.Context, item VideoCase) error {
	_, err := r.col.InsertOne(ctx, toDoc(item))
	return err
}

// Replace performs the full-record replace of the update action. The
// stored created_at survives; everything else is overwritten. Returns
// false when the id is unknown.
func (r *MongoRepository) Replace(ctx context.Context, item VideoCase) (bool, error) {
	set := bson.M{
		"category":    item.Category,
		"subcategory": item.Subcategory,
		"region":      item.Region,
		"robot_type":  item.RobotType,
		"client_name": item.ClientName,
		"video_url":   item.VideoURL,
		"rating":      item.Rating,
		"keywords":    JoinKeywords(item.Keywords),
		"description": item.Description,
		"updated_at":  item.UpdatedAt,
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]VideoCase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]VideoCase, 0)
	for cursor.Next(ctx) {
		var doc caseDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, fromDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
