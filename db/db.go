package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	MaterialsCollection    *mongo.Collection
	AuthorsCollection      *mongo.Collection
	GenresCollection       *mongo.Collection
	PlansCollection        *mongo.Collection
	SubscriptionCollection *mongo.Collection
	OrderCollection        *mongo.Collection
	ReviewsCollection      *mongo.Collection
	RatingsCollection      *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ClientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("readiradb").Collection("users")
	MaterialsCollection = Client.Database("readiradb").Collection("materials")
	AuthorsCollection = Client.Database("readiradb").Collection("authors")
	GenresCollection = Client.Database("readiradb").Collection("genres")
	PlansCollection = Client.Database("readiradb").Collection("plans")
	SubscriptionCollection = Client.Database("readiradb").Collection("subscriptions")
	OrderCollection = Client.Database("readiradb").Collection("orders")
	ReviewsCollection = Client.Database("readiradb").Collection("reviews")
	RatingsCollection = Client.Database("readiradb").Collection("ratings")
}
