/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <container>",
	Short: "Show the header, records and diagnostics of a container",
	Long: `Decode a container and report what was found without writing anything.

Examples:
  aion2loc inspect localization.dat
  aion2loc inspect localization.dat --limit 0
  aion2loc inspect localization.dat --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")

		container, diags, err := decodeFile(a.codec, a.logger, args[0])
		if err != nil {
			return err
		}

		switch format {
		case "json":
			return outputJSON(cmd.OutOrStdout(), inspectReport{
				Header:      describeHeader(container.Header),
				Records:     container.Len(),
				Diagnostics: diags,
			})
		case "table", "":
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "File:     %s\n", args[0])
			fmt.Fprintf(w, "Header:   %s\n", describeHeader(container.Header))
			fmt.Fprintf(w, "Records:  %d\n\n", container.Len())
			outputRecordsTable(w, container.Records, limit)
			fmt.Fprintln(w)
			outputDiagnosticsTable(w, diags, limit)
			return nil
		default:
			return fmt.Errorf("unknown format %q (want table or json)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	inspectCmd.Flags().IntP("limit", "n", 20, "Maximum rows to list (0 for all)")
}

type inspectReport struct {
	Header      string            `json:"header"`
	Records     int               `json:"records"`
	Diagnostics codec.Diagnostics `json:"diagnostics"`
}

// describeHeader summarizes a parsed header
func describeHeader(h *codec.ContainerHeader) string {
	if h == nil {
		return "missing (file shorter than header)"
	}
	if h.IsStandard() {
		return fmt.Sprintf("%s (standard)", h.SignatureString())
	}
	return fmt.Sprintf("%q tag=%#x trailer=%#x (non-standard, records parsed anyway)", h.SignatureString(), h.Tag, h.Trailer)
}
