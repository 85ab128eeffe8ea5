// Command migrate applies pending goose migrations and exits.
// Intended for deploy pipelines where the service itself runs with
// auto_migrate disabled.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/heartmarshall/orgdirectory-backend/internal/app"
	"github.com/heartmarshall/orgdirectory-backend/internal/config"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	if err := app.Migrate(ctx, cfg.Database); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("migrations applied")
}
