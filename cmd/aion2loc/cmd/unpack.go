/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/Holastor/AION-2-Localization/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// unpackCmd represents the unpack command
var unpackCmd = &cobra.Command{
	Use:   "unpack <container>",
	Short: "Extract records from a localization container to JSON",
	Long: `Decode a localization container and write its records as an interchange
JSON document with empty translation fields.

Corrupt regions are skipped and reported; every record that can be recovered
is written.

Examples:
  aion2loc unpack localization.dat
  aion2loc unpack localization.dat -o en.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = defaultUnpackOutput(args[0])
		}

		res, err := unpackFile(a.codec, a.logger, args[0], output)
		if err != nil {
			return err
		}

		cmd.Printf("✅ Extracted %d records to %s\n", res.Records, output)
		if res.Diagnostics > 0 {
			cmd.Printf("⚠️  %d diagnostics reported (run 'aion2loc inspect %s' for details)\n", res.Diagnostics, args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unpackCmd)
	unpackCmd.Flags().StringP("output", "o", "", "Output JSON file (default extracted_localization_<container>.json beside the input)")
}

// unpackResult summarizes one unpack
type unpackResult struct {
	Records     int
	Diagnostics int
}

// decodeFile reads and decodes a container, logging its diagnostics
func decodeFile(c *codec.ContainerCodec, logger *zap.Logger, path string) (*codec.Container, codec.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read container: %w", err)
	}
	container, diags := c.Decode(data)
	logging.LogDiagnostics(logger, path, diags)
	logger.Debug("decoded container",
		zap.String("file", path),
		zap.Int("bytes", len(data)),
		zap.Int("records", container.Len()),
		zap.Int("diagnostics", len(diags)))
	return container, diags, nil
}

// defaultUnpackOutput names the JSON written for a container. Dots in the
// container name are flattened so the result never equals the input.
func defaultUnpackOutput(input string) string {
	base := strings.ReplaceAll(filepath.Base(input), ".", "_")
	return filepath.Join(filepath.Dir(input), "extracted_localization_"+base+".json")
}

// samePath reports whether a and b name the same file
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// unpackFile decodes input and saves its records as JSON at output
func unpackFile(c *codec.ContainerCodec, logger *zap.Logger, input, output string) (unpackResult, error) {
	if samePath(input, output) {
		return unpackResult{}, fmt.Errorf("refusing to overwrite input %s with extracted JSON", input)
	}
	container, diags, err := decodeFile(c, logger, input)
	if err != nil {
		return unpackResult{}, err
	}
	if err := interchange.Save(output, interchange.FromRecords(container.Records)); err != nil {
		return unpackResult{}, fmt.Errorf("failed to write JSON: %w", err)
	}
	return unpackResult{Records: container.Len(), Diagnostics: len(diags)}, nil
}

// loadEntries reads a JSON document, or unpacks a container when path does
// not end in .json
func loadEntries(c *codec.ContainerCodec, logger *zap.Logger, path string) ([]interchange.Entry, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return interchange.Load(path)
	}
	container, _, err := decodeFile(c, logger, path)
	if err != nil {
		return nil, err
	}
	return interchange.FromRecords(container.Records), nil
}

// replaceExt swaps the extension of path for ext
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
