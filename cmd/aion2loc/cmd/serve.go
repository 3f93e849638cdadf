/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Holastor/AION-2-Localization/pkg/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the codec HTTP API",
	Long: `Serve decode and encode over HTTP, together with read access to the
snapshot archive and Prometheus metrics.

Settings default to the server section of the config file.

Examples:
  aion2loc serve
  aion2loc serve --port 8080 --bind 0.0.0.0 --api-key mysecretkey`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		c, err := getContainer()
		if err != nil {
			return err
		}

		cfg := a.config.Server
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		noSnapshots, _ := cmd.Flags().GetBool("no-snapshots")

		deps := api.Dependencies{
			Codec:  a.codec,
			Logger: a.logger,
		}
		if !noSnapshots {
			store, err := c.OpenSnapshots(a.config.Snapshots.Dir)
			if err != nil {
				return fmt.Errorf("failed to open snapshots: %w", err)
			}
			defer store.Close()
			deps.Snapshots = store
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serverConfig := api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.APIKey,
		}
		if cfg.APIKey == "" {
			a.logger.Warn("API key not set, requests are not authenticated")
		}
		a.logger.Debug("serve settings",
			zap.String("addr", serverConfig.Addr()),
			zap.Bool("snapshots", deps.Snapshots != nil))

		starter := c.GetServerFactory().CreateServerStarter()
		if err := starter.StartServer(ctx, deps, serverConfig); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 9300, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key required in the X-API-Key header")
	serveCmd.Flags().Bool("no-snapshots", false, "Do not expose the snapshot archive")
}
