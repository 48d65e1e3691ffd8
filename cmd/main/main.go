package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/BartekS5/uilm/internal/cli"
	"github.com/BartekS5/uilm/internal/config"
	"github.com/BartekS5/uilm/pkg/logger"
)

func main() {
	if err := config.LoadEnvFiles(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	logger.Close()
	if err != nil {
		stop()
		os.Exit(1)
	}
}
