package frontend

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mhasan/lifeos/frontend/client"
	"github.com/mhasan/lifeos/frontend/cmd"
	"github.com/zalando/go-keyring"
)

// RunFrontend starts the interactive shell.
func RunFrontend() {
	// Load the .env file
	err := godotenv.Load("frontend/.env")
	if err != nil {
		fmt.Println("Error loading .env file")
	}

	// Read the environment variables
	signingKey := os.Getenv("JWT_SIGNING_KEY")
	authToken := os.Getenv("AUTH_TOKEN")
	authTokenRefresh := os.Getenv("AUTH_TOKEN_REFRESH")
	serverURL := os.Getenv("SERVER_URL")

	// Drop any session left behind by a previous run
	keyring.Delete("LifeOS", authToken)
	keyring.Delete("LifeOS", authTokenRefresh)

	client.InitAuthClient(serverURL, signingKey, authToken, authTokenRefresh)
	cmd.InitAuthCmd()
	cmd.Execute()
}
