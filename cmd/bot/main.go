package main

import (
	"context"
	"flag"
	"log"

	"github.com/savezra/whatsapp-bot/internal/app"
)

func main() {
	flag.Parse()

	ctx := context.Background()

	a, err := app.NewApp(ctx)
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("app stopped with error: %v", err)
	}
}
