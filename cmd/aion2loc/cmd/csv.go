/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Holastor/AION-2-Localization/pkg/csvio"
	"github.com/Holastor/AION-2-Localization/pkg/fsutil"
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/spf13/cobra"
)

// csvCmd represents the csv command
var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Exchange records with spreadsheets",
}

var csvExportCmd = &cobra.Command{
	Use:   "export <json|container>",
	Short: "Write selected columns to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		columns, _ := cmd.Flags().GetStringSlice("columns")
		if output == "" {
			output = replaceExt(args[0], ".csv")
		}

		entries, err := loadEntries(a.codec, a.logger, args[0])
		if err != nil {
			return err
		}
		err = fsutil.WriteAtomic(output, 0644, func(w io.Writer) error {
			return csvio.Export(w, entries, columns)
		})
		if err != nil {
			return err
		}
		cmd.Printf("✅ Exported %d rows to %s\n", len(entries), output)
		return nil
	},
}

var csvInjectCmd = &cobra.Command{
	Use:   "inject <json> <csv>",
	Short: "Copy translations from a CSV file into a JSON document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		keyColumn, _ := cmd.Flags().GetString("key-column")
		translationColumn, _ := cmd.Flags().GetString("translation-column")
		if output == "" {
			output = args[0]
		}

		entries, err := interchange.Load(args[0])
		if err != nil {
			return err
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open CSV: %w", err)
		}
		defer f.Close()

		n, err := csvio.InjectTranslations(entries, f, keyColumn, translationColumn)
		if err != nil {
			return err
		}
		if err := interchange.Save(output, entries); err != nil {
			return err
		}
		cmd.Printf("✅ Injected %d translations into %s\n", n, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(csvCmd)
	csvCmd.AddCommand(csvExportCmd, csvInjectCmd)

	csvExportCmd.Flags().StringP("output", "o", "", "Output CSV file (default <input>.csv)")
	csvExportCmd.Flags().StringSlice("columns", csvio.DefaultColumns, "Columns to export")
	csvInjectCmd.Flags().StringP("output", "o", "", "Output JSON file (default: overwrite <json>)")
	csvInjectCmd.Flags().String("key-column", "Key", "CSV column holding the key")
	csvInjectCmd.Flags().String("translation-column", "Russian_Value", "CSV column holding the translation")
}
