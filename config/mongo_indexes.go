package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}

	db := MongoDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// admin_events indexes
	events := db.Collection("admin_events")
	_, err := events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("by_actor_occurred"),
		},
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("by_subject_occurred"),
		},
		{
			Keys:    bson.D{{Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("by_occurred"),
		},
	})
	return err
}
