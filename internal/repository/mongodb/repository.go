package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// Repository defines the interface for Z report snapshot storage.
type Repository interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
	DailyReport(ctx context.Context, day time.Time) (models.DailyReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "z_reports",
	}, nil
}

// SaveDailyReport stores the snapshot for report.Date, replacing an earlier
// run for the same day.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	_, err := r.collection().ReplaceOne(ctx, bson.M{"date": report.Date}, report, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert daily report: %w", err)
	}
	return nil
}

// DailyReport loads the snapshot stored for day.
func (r *MongoDBRepository) DailyReport(ctx context.Context, day time.Time) (models.DailyReport, error) {
	var report models.DailyReport
	err := r.collection().FindOne(ctx, bson.M{"date": day}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyReport{}, fmt.Errorf("daily report %s: %w", day.Format(models.DateLayout), models.ErrNotFound)
	}
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("failed to load daily report: %w", err)
	}
	return report, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}
