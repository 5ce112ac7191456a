package database

import (
	"context"
	"log"
	"time"

	"tutorly/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

// blobDoc is how a blob is laid out in the collection: one document per key.
type blobDoc struct {
	Key       string    `bson:"key"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore implements Store on a single MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore builds a Store over the "blobs" collection of the configured
// database. InitDB must have run.
func NewMongoStore() *MongoStore {
	coll := MongoClient.Database(config.AppConfig.DatabaseName).Collection("blobs")
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc blobDoc
	err := s.coll.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Data, nil
}

func (s *MongoStore) Save(ctx context.Context, key string, data []byte) error {
	doc := blobDoc{Key: key, Data: data, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"key": key}, doc, opts)
	return err
}

func (s *MongoStore) Clear(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"key": key})
	return err
}
