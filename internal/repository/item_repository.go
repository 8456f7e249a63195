package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"itemboard/internal/model"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) (string, error)
	FindOwned(ctx context.Context, id, ownerID string) (*model.Item, error)
	ListOwned(ctx context.Context, ownerID string, offset, limit int64) ([]model.Item, error)
	CountOwned(ctx context.Context, ownerID string) (int64, error)
	UpdateOwned(ctx context.Context, id, ownerID string, fields map[string]string) (*model.Item, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
}

type mongoItemRepository struct {
	coll *mongo.Collection
}

func NewMongoItemRepository(db *mongo.Database) ItemRepository {
	return &mongoItemRepository{coll: db.Collection("items")}
}

// ownedFilter matches a single document by id and owner in one lookup, so a
// foreign id misses exactly like a nonexistent one.
func ownedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": oid, "ownerId": ownerID}, nil
}

func (r *mongoItemRepository) Create(ctx context.Context, item *model.Item) (string, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	item.ID = oid

	return oid.Hex(), nil
}

func (r *mongoItemRepository) FindOwned(ctx context.Context, id, ownerID string) (*model.Item, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	var item model.Item
	err = r.coll.FindOne(ctx, filter).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *mongoItemRepository) ListOwned(ctx context.Context, ownerID string, offset, limit int64) ([]model.Item, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	items := []model.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *mongoItemRepository) CountOwned(ctx context.Context, ownerID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"ownerId": ownerID})
}

func (r *mongoItemRepository) UpdateOwned(ctx context.Context, id, ownerID string, fields map[string]string) (*model.Item, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	patch := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		patch[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item model.Item
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": patch}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *mongoItemRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
