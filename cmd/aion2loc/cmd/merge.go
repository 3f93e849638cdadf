/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/spf13/cobra"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <base.json> <source>",
	Short: "Carry translations over to a newly unpacked document",
	Long: `Bring a translated document in line with a new game version.

The source (JSON or container) decides which keys exist. Keys with unchanged
text keep the base translation, changed keys take the new text with an empty
translation, new keys are appended and vanished keys are dropped.

Examples:
  aion2loc merge ru.json localization.dat -o ru-new.json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		base, err := interchange.Load(args[0])
		if err != nil {
			return err
		}
		source, err := loadEntries(a.codec, a.logger, args[1])
		if err != nil {
			return err
		}

		res := interchange.Merge(base, source)
		if err := interchange.Save(output, res.Entries); err != nil {
			return err
		}

		cmd.Printf("✅ Wrote %d entries to %s\n", len(res.Entries), output)
		cmd.Printf("   kept %d, changed %d, added %d, removed %d\n", res.Kept, res.Updated, res.Added, res.Removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringP("output", "o", "merged_delete_append_localization.json", "Output JSON file")
}
