package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	availerrors "clinicbook/internal/availability/errors"
	"clinicbook/pkg/config"
	mongotx "clinicbook/pkg/db/mongo"
	"clinicbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const OverridesCollectionName = "Date_overrides"

type DateOverrideRepository interface {
	Insert(ctx context.Context, override *model.DateOverride) error
	FindByID(ctx context.Context, id string) (*model.DateOverride, error)
	// FindCovering returns the override whose inclusive range contains the
	// date key, or ErrOverrideNotFound. Range exclusivity guarantees at
	// most one match per location.
	FindCovering(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error)
	// FindIntersecting lists overrides whose range shares any day with
	// [startDate, endDate], excluding excludeID when non-empty.
	FindIntersecting(ctx context.Context, locationID, startDate, endDate, excludeID string) ([]*model.DateOverride, error)
	FindInRange(ctx context.Context, locationID, from, to string) ([]*model.DateOverride, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	ReplaceWindows(ctx context.Context, id string, windows []model.DayWindow) error
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoDateOverrideRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoDateOverrideRepository(cfg *config.Config) DateOverrideRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoDateOverrideRepository{
		cfg:        cfg,
		collection: db.Collection(OverridesCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

func (r *mongoDateOverrideRepository) Insert(ctx context.Context, override *model.DateOverride) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	override.CreatedAt = now
	override.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, override)
	if err != nil {
		return fmt.Errorf("failed to insert date override: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		override.ID = oid.Hex()
	}
	return nil
}

func (r *mongoDateOverrideRepository) FindByID(ctx context.Context, id string) (*model.DateOverride, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	var override model.DateOverride
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&override)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availerrors.ErrOverrideNotFound
		}
		return nil, fmt.Errorf("failed to find date override: %w", err)
	}
	return &override, nil
}

func (r *mongoDateOverrideRepository) FindCovering(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Zero-padded ISO dates order lexicographically, so $lte/$gte on the
	// stored strings is a correct calendar comparison.
	filter := bson.M{
		"location_id": locationID,
		"start_date":  bson.M{"$lte": dateKey},
		"end_date":    bson.M{"$gte": dateKey},
	}

	var override model.DateOverride
	err := r.collection.FindOne(ctx, filter).Decode(&override)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availerrors.ErrOverrideNotFound
		}
		return nil, fmt.Errorf("failed to find covering override: %w", err)
	}
	return &override, nil
}

func (r *mongoDateOverrideRepository) FindIntersecting(ctx context.Context, locationID, startDate, endDate, excludeID string) ([]*model.DateOverride, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"location_id": locationID,
		"start_date":  bson.M{"$lte": endDate},
		"end_date":    bson.M{"$gte": startDate},
	}
	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", availerrors.ErrInvalidID, excludeID)
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	return r.findList(ctx, filter)
}

func (r *mongoDateOverrideRepository) FindInRange(ctx context.Context, locationID, from, to string) ([]*model.DateOverride, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"location_id": locationID,
		"start_date":  bson.M{"$lte": to},
		"end_date":    bson.M{"$gte": from},
	}
	return r.findList(ctx, filter)
}

func (r *mongoDateOverrideRepository) findList(ctx context.Context, filter bson.M) ([]*model.DateOverride, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find date overrides: %w", err)
	}
	defer cursor.Close(ctx)

	var overrides []*model.DateOverride
	if err = cursor.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode date overrides: %w", err)
	}
	return overrides, nil
}

func (r *mongoDateOverrideRepository) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	fields["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update date override: %w", err)
	}
	if result.MatchedCount == 0 {
		return availerrors.ErrOverrideNotFound
	}
	return nil
}

func (r *mongoDateOverrideRepository) ReplaceWindows(ctx context.Context, id string, windows []model.DayWindow) error {
	return r.UpdateFields(ctx, id, bson.M{"windows": windows})
}

func (r *mongoDateOverrideRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete date override: %w", err)
	}
	if result.DeletedCount == 0 {
		return availerrors.ErrOverrideNotFound
	}
	return nil
}

func (r *mongoDateOverrideRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
