// Command issue-token signs an access token for local development and manual testing.
// Login is handled outside this service; the API only validates tokens.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/finance-tracker/ledger-api/config"
	"github.com/finance-tracker/ledger-api/internal/integration/adapters"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	userIDFlag := flag.String("user", "", "user id (uuid); a random one is generated when empty")
	email := flag.String("email", "dev@example.com", "email claim")
	ttl := flag.Duration("ttl", cfg.JWT.AccessTokenExpiry, "token lifetime")
	flag.Parse()

	userID := uuid.New()
	if *userIDFlag != "" {
		parsed, err := uuid.Parse(*userIDFlag)
		if err != nil {
			slog.Error("Invalid user id", "user", *userIDFlag, "error", err)
			os.Exit(2)
		}
		userID = parsed
	}

	tokenService := adapters.NewTokenService(cfg.JWT.Secret, *ttl)
	token, err := tokenService.GenerateAccessToken(context.Background(), userID, *email)
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "user %s, expires %s\n", userID, time.Now().Add(*ttl).UTC().Format(time.RFC3339))
	fmt.Println(token)
}
