package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/fav-sync/internal/adapter"
	"github.com/MKhiriev/fav-sync/internal/client"
	"github.com/MKhiriev/fav-sync/internal/config"
	"github.com/MKhiriev/fav-sync/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newAdapter := func(cfg config.ClientConfig, log *logger.Logger) (adapter.ServerAdapter, error) {
		return adapter.NewHTTPServerAdapter(cfg, log)
	}

	app, err := client.NewApp(newAdapter, os.Stdin, os.Stdout, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
