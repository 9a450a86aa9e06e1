package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jgoulah/btcenergy/internal/graph"
	"github.com/jgoulah/btcenergy/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the GraphQL API",
	Long: `Starts an HTTP server exposing the energy queries at /graphql (GET and POST)
and a liveness probe at /health.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, svc, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	schema, err := graph.NewSchema(svc)
	if err != nil {
		return err
	}

	listen := cfg.GetListen()
	if serveListen != "" {
		listen = serveListen
	}

	srv := server.New(schema, server.Options{
		Listen:         listen,
		RateLimitRPS:   cfg.GetRateLimitRPS(),
		RateLimitBurst: cfg.GetRateLimitBurst(),
	}, log.Named("server"))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(ctx)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-quit:
			log.Info("received shutdown signal", zap.String("signal", sig.String()))
			cancel()
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	log.Info("server stopped")
	return nil
}
