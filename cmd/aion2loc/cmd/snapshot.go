/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/Holastor/AION-2-Localization/pkg/snapshot"
	"github.com/spf13/cobra"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Archive decoded documents and compare game versions",
	Long: `Keep decoded documents in a local archive so that game updates can be
compared. A snapshot is referenced by its id or by its name; a name refers to
the newest snapshot saved under it.`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <json|container>",
	Short: "Archive a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = replaceExt(args[0], "")
		}

		entries, err := loadEntries(a.codec, a.logger, args[0])
		if err != nil {
			return err
		}

		return withSnapshots(a, func(s *snapshot.Store) error {
			meta, err := s.Save(name, args[0], entries)
			if err != nil {
				return err
			}
			cmd.Printf("✅ Saved snapshot %s (%s, %d entries)\n", meta.ID, meta.Name, meta.Entries)
			return nil
		})
	},
}

var snapshotListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List archived snapshots",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		return withSnapshots(a, func(s *snapshot.Store) error {
			metas, err := s.List()
			if err != nil {
				return err
			}
			if format == "json" {
				return outputJSON(cmd.OutOrStdout(), metas)
			}
			outputSnapshotsTable(cmd.OutOrStdout(), metas)
			return nil
		})
	},
}

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff <older> <newer>",
	Short: "Show keys added, removed and changed between two snapshots",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")

		return withSnapshots(a, func(s *snapshot.Store) error {
			_, older, err := s.Get(args[0])
			if err != nil {
				return err
			}
			_, newer, err := s.Get(args[1])
			if err != nil {
				return err
			}

			delta := interchange.Diff(older, newer)
			if format == "json" {
				return outputJSON(cmd.OutOrStdout(), delta)
			}
			if delta.Empty() {
				cmd.Println("No differences")
				return nil
			}
			outputDelta(cmd.OutOrStdout(), delta, limit)
			return nil
		})
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export <ref>",
	Short: "Write an archived snapshot back out as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		return withSnapshots(a, func(s *snapshot.Store) error {
			meta, entries, err := s.Get(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = meta.Name + ".json"
			}
			if err := interchange.Save(output, entries); err != nil {
				return err
			}
			cmd.Printf("✅ Wrote %d entries to %s\n", len(entries), output)
			return nil
		})
	},
}

var snapshotRmCmd = &cobra.Command{
	Use:     "rm <ref>",
	Aliases: []string{"delete"},
	Short:   "Delete an archived snapshot",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		return withSnapshots(a, func(s *snapshot.Store) error {
			meta, err := s.Delete(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("🗑️  Deleted snapshot %s (%s)\n", meta.ID, meta.Name)
			return nil
		})
	},
}

// withSnapshots opens the configured archive for the duration of fn
func withSnapshots(a *app, fn func(*snapshot.Store) error) error {
	c, err := getContainer()
	if err != nil {
		return err
	}
	s, err := c.OpenSnapshots(a.config.Snapshots.Dir)
	if err != nil {
		return fmt.Errorf("failed to open snapshots: %w", err)
	}
	defer s.Close()
	return fn(s)
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotDiffCmd, snapshotExportCmd, snapshotRmCmd)

	snapshotSaveCmd.Flags().StringP("name", "n", "", "Snapshot name (default: input file name)")
	snapshotListCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	snapshotDiffCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	snapshotDiffCmd.Flags().IntP("limit", "l", 50, "Maximum lines per section (0 for all)")
	snapshotExportCmd.Flags().StringP("output", "o", "", "Output JSON file (default <name>.json)")
}
