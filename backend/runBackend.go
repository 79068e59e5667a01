package backend

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mhasan/lifeos/backend/notifications/email"
	"github.com/mhasan/lifeos/backend/queue"
	"github.com/mhasan/lifeos/backend/server"
	"github.com/mhasan/lifeos/backend/server/auth"
	storage "github.com/mhasan/lifeos/backend/storage/persistent"
)

// RunBackend is the main function that sets up and runs the backend server.
func RunBackend() {

	// Load the .env file.
	err := godotenv.Load("backend/.env")
	if err != nil {
		fmt.Println("Error loading .env file")
	}

	// Read the environment variables from the .env file using os.Getenv.
	signingKey := os.Getenv("JWT_SIGNING_KEY") // JWT signing key for token generation
	serverURL := os.Getenv("SERVER_URL")       // The URL where the server is running
	dbURI := os.Getenv("MONGODB_URI")          // MongoDB database URI
	dbName := os.Getenv("DB_NAME")             // The name of the MongoDB database
	smtpEmail := os.Getenv("GOOGLE_EMAIL")     // The email address used for sending reminder alerts
	smtpPassword := os.Getenv("GOOGLE_PASS")   // The password for the email account
	redisUrl := os.Getenv("REDIS_URL")         // The Redis URL for deduplicating alerts
	rabbitMQURL := os.Getenv("RABBITMQ_URL")   // The URL for the RabbitMQ message broker
	numAlertProducers := 1                     // The number of alert producers
	numAlertConsumers := 2                     // The number of alert consumers
	ctx := context.Background()

	// Initialize the email service used for reminder alerts
	if _, err := email.InitEmailService(smtpEmail, smtpPassword); err != nil {
		log.Printf("error initializing email service, alert delivery will fail: %v", err)
	}

	// Initialize the alert cache using the Redis URL
	alertCache := queue.InitAlertCache(redisUrl)

	// Build the alert queue using the RabbitMQ URL, number of producers and consumers, and alert cache
	alertQueue := queue.BuildAlertQueue(rabbitMQURL, numAlertProducers, numAlertConsumers, alertCache)

	// Start the queue consumers
	_, _, err = alertQueue.StartConsumers(ctx)
	if err != nil {
		log.Fatal("error starting queue consumers: ", err)
	}

	// Connect the storage backend shared by the auth service and the per-user sessions
	store := storage.NewStorage()
	if err := store.Connect(dbName, dbURI); err != nil {
		log.Fatal("error connecting to storage: ", err)
	}

	// Initialize the authentication service
	auth.InitAuth(store, signingKey)

	// Start the core server
	go server.Start(serverURL, signingKey, store, alertQueue)

	// Setting up the signal interrupt handler to gracefully shutdown our server
	sigs := make(chan os.Signal, 1)

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		store.Disconnect()
		os.Exit(0)
	}()

	select {}
}
