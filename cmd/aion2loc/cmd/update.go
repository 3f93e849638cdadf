/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/config"
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download the published localization into the game",
	Long: `Download the published localization pak and install it into the game
directory. The game directory is remembered in the config file once given.

Examples:
  aion2loc update --game-path "C:\Games\AION2_TW"
  aion2loc update`,
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

		if cmd.Flags().Changed("game-path") {
			gamePath, _ := cmd.Flags().GetString("game-path")
			if err := rememberGamePath(a, gamePath); err != nil {
				return err
			}
		}
		if a.config.GamePath == "" {
			return fmt.Errorf("no game path configured; pass --game-path")
		}

		cmd.Printf("⬇️  Downloading localization to %s\n", a.config.TargetPath())
		target, err := c.NewUpdater(a.config.Updater, a.logger).Update(cmd.Context(), a.config.GamePath)
		if err != nil {
			return err
		}
		cmd.Printf("✅ Installed %s\n", target)
		return nil
	},
}

// rememberGamePath stores gamePath in the loaded config and persists it
func rememberGamePath(a *app, gamePath string) error {
	gamePath = strings.Trim(strings.TrimSpace(gamePath), `"`)
	if gamePath == "" {
		return fmt.Errorf("game path must not be empty")
	}
	a.config.GamePath = filepath.Clean(gamePath)
	if err := config.SaveConfig(a.config, a.configPath); err != nil {
		return fmt.Errorf("failed to remember game path: %w", err)
	}
	a.logger.Sugar().Infof("game path saved to %s", a.configPath)
	return nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringP("game-path", "g", "", "Game installation directory")
}
