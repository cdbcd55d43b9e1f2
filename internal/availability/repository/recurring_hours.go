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
)

const HoursCollectionName = "Recurring_hours"

type RecurringHoursRepository interface {
	Insert(ctx context.Context, hours *model.RecurringHours) error
	FindByLocationAndWeekday(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error)
	FindByLocation(ctx context.Context, locationID string) ([]*model.RecurringHours, error)
	SetActive(ctx context.Context, id string, isActive bool) error
	ReplaceWindows(ctx context.Context, id string, windows []model.DayWindow) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoRecurringHoursRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoRecurringHoursRepository(cfg *config.Config) RecurringHoursRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoRecurringHoursRepository{
		cfg:        cfg,
		collection: db.Collection(HoursCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

func (r *mongoRecurringHoursRepository) Insert(ctx context.Context, hours *model.RecurringHours) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	hours.CreatedAt = now
	hours.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, hours)
	if err != nil {
		return fmt.Errorf("failed to insert recurring hours: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		hours.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRecurringHoursRepository) FindByLocationAndWeekday(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"location_id": locationID, "weekday": weekday}

	var hours model.RecurringHours
	err := r.collection.FindOne(ctx, filter).Decode(&hours)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availerrors.ErrHoursNotFound
		}
		return nil, fmt.Errorf("failed to find recurring hours: %w", err)
	}
	return &hours, nil
}

func (r *mongoRecurringHoursRepository) FindByLocation(ctx context.Context, locationID string) ([]*model.RecurringHours, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"location_id": locationID})
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring hours: %w", err)
	}
	defer cursor.Close(ctx)

	var hours []*model.RecurringHours
	if err = cursor.All(ctx, &hours); err != nil {
		return nil, fmt.Errorf("failed to decode recurring hours: %w", err)
	}
	return hours, nil
}

func (r *mongoRecurringHoursRepository) SetActive(ctx context.Context, id string, isActive bool) error {
	return r.updateByID(ctx, id, bson.M{"is_active": isActive})
}

func (r *mongoRecurringHoursRepository) ReplaceWindows(ctx context.Context, id string, windows []model.DayWindow) error {
	return r.updateByID(ctx, id, bson.M{"windows": windows})
}

func (r *mongoRecurringHoursRepository) updateByID(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	fields["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update recurring hours: %w", err)
	}
	if result.MatchedCount == 0 {
		return availerrors.ErrHoursNotFound
	}
	return nil
}

func (r *mongoRecurringHoursRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
