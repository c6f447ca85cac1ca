package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/luckywheel/spin-backend/internal/config"
	"github.com/luckywheel/spin-backend/internal/repositories/mongodb"
	"github.com/luckywheel/spin-backend/internal/utils"
	pkgmongo "github.com/luckywheel/spin-backend/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Imports participants for an event from a CSV export:
//
//	go run ./cmd/scripts <eventID> <locationID> <file.csv>
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get MongoDB connection string from environment
	mongoURI := config.GetEnv("MONGODB_URI", "")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}

	dbName := config.GetEnv("MONGODB_DATABASE", "luckywheel")

	if len(os.Args) < 4 {
		log.Fatal("Usage: import_csv <eventID> <locationID> <file.csv>")
	}
	eventID, err := primitive.ObjectIDFromHex(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid event ID: %v", err)
	}
	locationID, err := primitive.ObjectIDFromHex(os.Args[2])
	if err != nil {
		log.Fatalf("Invalid location ID: %v", err)
	}
	csvFilePath := os.Args[3]

	// Connect to MongoDB
	client, err := pkgmongo.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)
	participantRepo := mongodb.NewParticipantRepository(db)

	importer := utils.NewCSVImporter(participantRepo)
	results, err := importer.ImportParticipants(context.Background(), eventID, locationID, csvFilePath)
	if err != nil {
		log.Fatalf("Failed to import participants: %v", err)
	}

	log.Printf("Import finished: %v rows, %v created, %v updated",
		results["totalRows"], results["participantsCreated"], results["participantsUpdated"])
	for _, e := range results["errors"].([]string) {
		log.Printf("  %s", e)
	}
}
