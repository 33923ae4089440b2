package main

import (
	"log/slog"
	"os"

	"github.com/aaravmahajanofficial/bookstore-api/internal/cli"
)

//	@title						Bookstore API
//	@version					1.0
//	@description				Catalog, reviews, cart, checkout and account management for an online bookstore.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := cli.NewRootCommand().Execute(); err != nil {
		slog.Error("❌ Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
