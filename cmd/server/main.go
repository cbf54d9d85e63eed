package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/racfadmin/internal/server"
	"github.com/dmitrijs2005/racfadmin/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
