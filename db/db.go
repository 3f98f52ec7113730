package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UsersCollection        *mongo.Collection
	StudySessionCollection *mongo.Collection
	BookedCollection       *mongo.Collection
	ReviewsCollection      *mongo.Collection
	NotesCollection        *mongo.Collection
	MaterialsCollection    *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DATABASE_NAME")
	if dbName == "" {
		dbName = "studyhub"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UsersCollection = Client.Database(dbName).Collection("users")
	StudySessionCollection = Client.Database(dbName).Collection("study-session")
	BookedCollection = Client.Database(dbName).Collection("booked-sessions")
	ReviewsCollection = Client.Database(dbName).Collection("reviews")
	NotesCollection = Client.Database(dbName).Collection("notes")
	MaterialsCollection = Client.Database(dbName).Collection("materials")
}

// Disconnect releases the shared client. Called once on shutdown.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
