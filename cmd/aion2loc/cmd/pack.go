/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/Holastor/AION-2-Localization/pkg/fsutil"
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/Holastor/AION-2-Localization/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <json>",
	Short: "Build a localization container from translated JSON",
	Long: `Encode the translations of an interchange JSON document into a
localization container.

Russian_Value becomes the record value, stored as UTF-16 when
Russian_Data_Type is 1 and as UTF-8 otherwise. Entries without a translation
are skipped unless --keep-empty is given. The container is written only once
it is complete.

Examples:
  aion2loc pack ru.json
  aion2loc pack ru.json -o localization.dat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		keepEmpty, _ := cmd.Flags().GetBool("keep-empty")

		res, err := packFile(a.codec, a.logger, args[0], output, keepEmpty)
		if err != nil {
			return err
		}

		cmd.Printf("✅ Packed %d of %d entries into %s (%d bytes)\n", res.Written, res.Entries, output, res.Bytes)
		if res.Skipped > 0 {
			cmd.Printf("⏭️  Skipped %d entries without translation\n", res.Skipped)
		}
		if res.Diagnostics > 0 {
			cmd.Printf("⚠️  %d entries dropped with an unknown Key_Type\n", res.Diagnostics)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().StringP("output", "o", "repacked_l10n.dat", "Output container file")
	packCmd.Flags().Bool("keep-empty", false, "Also write entries without a translation")
}

// packResult summarizes one pack
type packResult struct {
	Entries     int
	Written     int
	Skipped     int
	Diagnostics int
	Bytes       int
}

// packFile encodes the JSON document at input into a container at output
func packFile(c *codec.ContainerCodec, logger *zap.Logger, input, output string, keepEmpty bool) (packResult, error) {
	entries, err := interchange.Load(input)
	if err != nil {
		return packResult{}, err
	}

	filter := codec.SkipEmptyValues
	if keepEmpty {
		filter = codec.KeepAll
	}

	records := interchange.ToRecords(entries)
	data, diags, err := c.Encode(records, filter)
	logging.LogDiagnostics(logger, input, diags)
	if err != nil {
		return packResult{}, fmt.Errorf("failed to encode container: %w", err)
	}

	if err := fsutil.WriteFileAtomic(output, data, 0644); err != nil {
		return packResult{}, fmt.Errorf("failed to write container: %w", err)
	}

	res := packResult{Entries: len(entries), Diagnostics: len(diags), Bytes: len(data)}
	for _, r := range records {
		if !filter(r) {
			res.Skipped++
		}
	}
	res.Written = res.Entries - res.Skipped - res.Diagnostics
	return res, nil
}
