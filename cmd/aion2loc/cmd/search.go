/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/Holastor/AION-2-Localization/pkg/query"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <json|container>",
	Short: "Find records by key, text or translation",
	Long: `List the records matching every --where condition.

A condition is <field><operator><value>. Fields: Key, Value, Key_Type,
Russian_Value, Russian_Data_Type. Operators: = != ^= (prefix) $= (suffix)
*= (contains) ~ (regular expression).

Examples:
  aion2loc search en.json --where 'Key^=NpcTalk_'
  aion2loc search ru.json --where 'Russian_Value=' --limit 0
  aion2loc search l10n.dat --where 'Value~(?i)sword' --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		where, _ := cmd.Flags().GetStringArray("where")
		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")

		queries := make([]query.FieldQuery, 0, len(where))
		for _, w := range where {
			q, err := query.ParseFieldQuery(w)
			if err != nil {
				return err
			}
			queries = append(queries, q)
		}

		entries, err := loadEntries(a.codec, a.logger, args[0])
		if err != nil {
			return err
		}

		it, err := query.NewEngine(nil).Execute(cmd.Context(), entries, queries...)
		if err != nil {
			return err
		}
		results, err := query.Collect(it, limit)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			if results == nil {
				results = []query.Result{}
			}
			return outputJSON(cmd.OutOrStdout(), results)
		case "table", "":
			outputResultsTable(cmd.OutOrStdout(), results)
			return nil
		default:
			return fmt.Errorf("unknown format %q (want table or json)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringArrayP("where", "w", nil, "Condition <field><op><value> (repeatable)")
	searchCmd.Flags().IntP("limit", "n", 50, "Maximum results (0 for all)")
	searchCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
