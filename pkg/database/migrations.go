package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neighborhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// namespaceExists is the server error code returned when creating a
// collection that already exists.
const namespaceExists = 48

type Migration struct {
	Version     int
	Description string
	Up          func(context.Context, *mongo.Database) error
	Down        func(context.Context, *mongo.Database) error
}

// SchemaEnums are the closed value sets mirrored into the collection
// validators.
type SchemaEnums struct {
	Categories []string
	Urgencies  []string
	Statuses   []string
	MinStars   int
	MaxStars   int
}

type Migrator struct {
	db         *mongo.Database
	logger     *logger.Logger
	migrations []Migration
}

func NewMigrator(db *mongo.Database, log *logger.Logger, enums SchemaEnums) *Migrator {
	return &Migrator{
		db:         db,
		logger:     log,
		migrations: getMigrations(enums),
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	// Run migrations
	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}

		m.logger.WithField("version", migration.Version).Infof("Running migration: %s", migration.Description)

		if err := migration.Up(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if err := m.updateVersion(ctx, migration.Version); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}

	return nil
}

func (m *Migrator) Down(ctx context.Context, targetVersion int) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version > currentVersion || migration.Version <= targetVersion {
			continue
		}

		m.logger.WithField("version", migration.Version).Infof("Reverting migration: %s", migration.Description)

		if err := migration.Down(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
		}

		previousVersion := 0
		if i > 0 {
			previousVersion = m.migrations[i-1].Version
		}
		if err := m.updateVersion(ctx, previousVersion); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion(ctx context.Context) (int, error) {
	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(ctx context.Context, version int) error {
	_, err := m.db.Collection("migrations").ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func getMigrations(enums SchemaEnums) []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users collection with indexes",
			Up:          createUsersIndexes,
			Down:        dropCollection("users"),
		},
		{
			Version:     2,
			Description: "Create requests collection with validator and indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := ensureValidator(ctx, db, "requests", RequestSchema(enums)); err != nil {
					return err
				}
				return createRequestsIndexes(ctx, db)
			},
			Down: dropCollection("requests"),
		},
		{
			Version:     3,
			Description: "Create ratings collection with validator and unique request index",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := ensureValidator(ctx, db, "ratings", RatingSchema(enums)); err != nil {
					return err
				}
				return createRatingsIndexes(ctx, db)
			},
			Down: dropCollection("ratings"),
		},
		{
			Version:     4,
			Description: "Create activities collection with indexes",
			Up:          createActivitiesIndexes,
			Down:        dropCollection("activities"),
		},
	}
}

func dropCollection(name string) func(context.Context, *mongo.Database) error {
	return func(ctx context.Context, db *mongo.Database) error {
		return db.Collection(name).Drop(ctx)
	}
}

// RequestSchema is the $jsonSchema enforced on the requests collection.
func RequestSchema(enums SchemaEnums) bson.M {
	return bson.M{
		"bsonType": "object",
		"required": []string{"requester_id", "category", "description", "urgency", "preferred_time", "status"},
		"properties": bson.M{
			"requester_id":   bson.M{"bsonType": "objectId"},
			"category":       bson.M{"enum": enums.Categories},
			"urgency":        bson.M{"enum": enums.Urgencies},
			"status":         bson.M{"enum": enums.Statuses},
			"description":    bson.M{"bsonType": "string", "minLength": 1},
			"preferred_time": bson.M{"bsonType": "string", "minLength": 1},
			"completed_by":   bson.M{"bsonType": []string{"objectId", "null"}},
		},
	}
}

// RatingSchema is the $jsonSchema enforced on the ratings collection.
func RatingSchema(enums SchemaEnums) bson.M {
	score := bson.M{"bsonType": []string{"int", "long"}, "minimum": enums.MinStars, "maximum": enums.MaxStars}
	return bson.M{
		"bsonType": "object",
		"required": []string{"request_id", "rater_id", "rated_user_id", "stars"},
		"properties": bson.M{
			"request_id":      bson.M{"bsonType": "objectId"},
			"rater_id":        bson.M{"bsonType": "objectId"},
			"rated_user_id":   bson.M{"bsonType": "objectId"},
			"stars":           score,
			"quality_of_work": score,
			"communication":   score,
			"professionalism": score,
			"review":          bson.M{"bsonType": "string", "maxLength": 500},
		},
	}
}

// ensureValidator creates the collection with the schema, or updates the
// validator when the collection already exists.
func ensureValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	validator := bson.M{"$jsonSchema": schema}

	opts := options.CreateCollection().
		SetValidator(validator).
		SetValidationLevel("strict").
		SetValidationAction("error")

	err := db.CreateCollection(ctx, name, opts)
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != namespaceExists {
		return err
	}

	return db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "strict"},
	}).Err()
}

func createUsersIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := db.Collection("users").Indexes().CreateMany(ctx, indexes)
	return err
}

func createRequestsIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "requester_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "completed_by", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := db.Collection("requests").Indexes().CreateMany(ctx, indexes)
	return err
}

func createRatingsIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "rated_user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "rater_id", Value: 1}},
		},
	}

	_, err := db.Collection("ratings").Indexes().CreateMany(ctx, indexes)
	return err
}

func createActivitiesIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	}

	_, err := db.Collection("activities").Indexes().CreateMany(ctx, indexes)
	return err
}
