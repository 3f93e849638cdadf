/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/Holastor/AION-2-Localization/pkg/po"
	"github.com/spf13/cobra"
)

// poCmd represents the po command
var poCmd = &cobra.Command{
	Use:   "po",
	Short: "Convert between interchange JSON and gettext PO files",
	Long: `Work with gettext PO files. Each record becomes a message with the key
in msgctxt, the source text in msgid and the translation in msgstr.`,
}

var poExportCmd = &cobra.Command{
	Use:   "export <json|container>",
	Short: "Write a PO file for translation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = replaceExt(args[0], ".po")
		}

		entries, err := loadEntries(a.codec, a.logger, args[0])
		if err != nil {
			return err
		}
		f := po.Export(entries)
		if err := po.WriteFile(output, f); err != nil {
			return err
		}
		cmd.Printf("✅ Exported %d messages to %s\n", len(f.Messages), output)
		return nil
	},
}

var poImportCmd = &cobra.Command{
	Use:   "import <po>",
	Short: "Convert a translated PO file to interchange JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = replaceExt(args[0], ".json")
		}

		entries, err := po.Import(args[0])
		if err != nil {
			return err
		}
		if err := interchange.Save(output, entries); err != nil {
			return err
		}
		cmd.Printf("✅ Imported %d entries to %s\n", len(entries), output)
		return nil
	},
}

var poUpdateCmd = &cobra.Command{
	Use:   "update <json|container> <po>",
	Short: "Rebuild a PO file against a new game version",
	Long: `Rebuild an existing PO file from a freshly unpacked document.

Messages whose source text is unchanged keep their translation. Changed
messages are marked fuzzy and their old translation is kept in a translator
comment. Messages whose key no longer exists are removed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = args[1]
		}

		entries, err := loadEntries(a.codec, a.logger, args[0])
		if err != nil {
			return err
		}
		existing, err := po.ReadFile(args[1])
		if err != nil {
			return err
		}

		updated, stats := po.Update(entries, existing)
		if err := po.WriteFile(output, updated); err != nil {
			return err
		}

		cmd.Printf("✅ Updated %s\n", output)
		cmd.Printf("🔄 Changed (fuzzy): %d\n", stats.Updated)
		cmd.Printf("➕ Inserted:        %d\n", stats.Inserted)
		cmd.Printf("🗑️  Removed:         %d\n", stats.Removed)
		cmd.Printf("⏭️  Unchanged:       %d\n", stats.Kept)
		return nil
	},
}

var poCategorizeCmd = &cobra.Command{
	Use:   "categorize <json|container>",
	Short: "Split records into one PO file per key category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")
		separator, _ := cmd.Flags().GetString("separator")

		entries, err := loadEntries(a.codec, a.logger, args[0])
		if err != nil {
			return err
		}
		files, messages, err := po.ExportCategories(dir, entries, separator)
		if err != nil {
			return err
		}
		cmd.Printf("✅ Wrote %d files (%d messages) to %s\n", files, messages, dir)
		return nil
	},
}

var poCombineCmd = &cobra.Command{
	Use:   "combine <dir>",
	Short: "Merge every PO file below a directory into one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		master, added, err := po.Combine(args[0], a.logger)
		if err != nil {
			return err
		}
		if err := po.WriteFile(output, master); err != nil {
			return err
		}
		cmd.Printf("✅ Combined %d messages into %s\n", added, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(poCmd)
	poCmd.AddCommand(poExportCmd, poImportCmd, poUpdateCmd, poCategorizeCmd, poCombineCmd)

	poExportCmd.Flags().StringP("output", "o", "", "Output PO file (default <input>.po)")
	poImportCmd.Flags().StringP("output", "o", "", "Output JSON file (default <input>.json)")
	poUpdateCmd.Flags().StringP("output", "o", "", "Output PO file (default: overwrite <po>)")
	poCategorizeCmd.Flags().StringP("dir", "d", "po_categories", "Output directory")
	poCategorizeCmd.Flags().String("separator", "_", "Key part separator")
	poCombineCmd.Flags().StringP("output", "o", "master_localization.po", "Output PO file")
}
