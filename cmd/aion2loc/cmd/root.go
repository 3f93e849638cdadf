/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/Holastor/AION-2-Localization/pkg/config"
	"github.com/Holastor/AION-2-Localization/pkg/di"
	"github.com/Holastor/AION-2-Localization/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var container *di.Container

// SetContainer injects the dependency container used by the commands
func SetContainer(c *di.Container) {
	container = c
}

type appKey struct{}

// app carries what every command needs
type app struct {
	config     *config.Config
	configPath string
	logger     *zap.Logger
	codec      *codec.ContainerCodec
}

func getApp(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok {
		return nil, errors.New("application not initialized")
	}
	return a, nil
}

func getContainer() (*di.Container, error) {
	if container == nil {
		return nil, errors.New("dependency container not initialized")
	}
	return container, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aion2loc",
	Short: "AION2 localization toolkit",
	Long: `aion2loc unpacks and repacks the AION2 localization container and
moves its records through JSON, PO and CSV for translation work.

Typical workflow:
  aion2loc unpack localization.dat -o en.json
  aion2loc po export en.json -o en.po
  ... translate en.po ...
  aion2loc po import en.po -o ru.json
  aion2loc pack ru.json -o localization.dat`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")

		a, err := newApp(configPath, logLevel)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(context.WithValue(ctx, appKey{}, a))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if a, err := getApp(cmd); err == nil {
			_ = a.logger.Sync()
		}
	},
}

// newApp loads configuration from configPath, or the defaults when the file
// does not exist, and builds the logger and codec from it.
func newApp(configPath, logLevel string) (*app, error) {
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &app{
		config:     cfg,
		configPath: configPath,
		logger:     logger,
		codec:      codec.NewContainerCodecWithLimits(cfg.CodecLimits()),
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ~/.config/aion2loc/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")
}
