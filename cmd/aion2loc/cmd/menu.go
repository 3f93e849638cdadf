/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/Holastor/AION-2-Localization/pkg/po"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errQuit ends the menu loop
var errQuit = errors.New("quit")

// menuAction runs one menu entry
type menuAction struct {
	label string
	run   func(ctx context.Context, a *app) error
}

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu for the common workflows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		actions := menuActions()
		labels := make([]string, len(actions))
		for i, act := range actions {
			labels[i] = act.label
		}

		pterm.DefaultHeader.WithFullWidth().Println("AION2 localization tool")
		for {
			choice, err := pterm.DefaultInteractiveSelect.
				WithOptions(labels).
				WithDefaultOption(labels[0]).
				WithMaxHeight(len(labels)).
				Show("Select an action")
			if err != nil {
				return err
			}

			act := findAction(actions, choice)
			if act == nil {
				continue
			}
			err = act.run(cmd.Context(), a)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				a.logger.Error("menu action failed", zap.String("action", choice), zap.Error(err))
				pterm.Error.Println(err)
			}
			pterm.Println()
		}
	},
}

func findAction(actions []menuAction, label string) *menuAction {
	for i := range actions {
		if actions[i].label == label {
			return &actions[i]
		}
	}
	return nil
}

func menuActions() []menuAction {
	return []menuAction{
		{"Unpack container to JSON", menuUnpack},
		{"Pack JSON into container", menuPack},
		{"Convert PO to JSON", menuPOImport},
		{"Update PO from JSON", menuPOUpdate},
		{"Export JSON to PO", menuPOExport},
		{"Merge translated JSON with new version", menuMerge},
		{"Download localization into the game", menuUpdate},
		{"Exit", func(context.Context, *app) error { return errQuit }},
	}
}

// ask prompts for a value and strips surrounding quotes; def is used for an
// empty answer
func ask(prompt, def string) (string, error) {
	input := pterm.DefaultInteractiveTextInput
	if def != "" {
		input = *input.WithDefaultValue(def)
	}
	answer, err := input.Show(prompt)
	if err != nil {
		return "", err
	}
	answer = strings.Trim(strings.TrimSpace(answer), `"`)
	if answer == "" {
		answer = def
	}
	if answer == "" {
		return "", fmt.Errorf("%s: a value is required", prompt)
	}
	return answer, nil
}

func menuUnpack(_ context.Context, a *app) error {
	input, err := ask("Container file to unpack", "")
	if err != nil {
		return err
	}
	output, err := ask("Output JSON file", defaultUnpackOutput(input))
	if err != nil {
		return err
	}

	res, err := unpackFile(a.codec, a.logger, input, output)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Extracted %d records to %s\n", res.Records, output)
	if res.Diagnostics > 0 {
		pterm.Warning.Printf("%d diagnostics reported\n", res.Diagnostics)
	}
	return nil
}

func menuPack(_ context.Context, a *app) error {
	input, err := ask("JSON file to pack", "")
	if err != nil {
		return err
	}
	output, err := ask("Output container file", "repacked_l10n.dat")
	if err != nil {
		return err
	}

	res, err := packFile(a.codec, a.logger, input, output, false)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Packed %d of %d entries into %s\n", res.Written, res.Entries, output)
	return nil
}

func menuPOImport(_ context.Context, a *app) error {
	input, err := ask("PO file to convert", "")
	if err != nil {
		return err
	}
	output, err := ask("Output JSON file", "translations_from_po.json")
	if err != nil {
		return err
	}

	entries, err := po.Import(input)
	if err != nil {
		return err
	}
	if err := interchange.Save(output, entries); err != nil {
		return err
	}
	pterm.Success.Printf("Imported %d entries to %s\n", len(entries), output)
	return nil
}

func menuPOUpdate(_ context.Context, a *app) error {
	input, err := ask("JSON file with the new game text", "")
	if err != nil {
		return err
	}
	target, err := ask("PO file to update", "localization_template.po")
	if err != nil {
		return err
	}

	entries, err := loadEntries(a.codec, a.logger, input)
	if err != nil {
		return err
	}
	existing, err := po.ReadFile(target)
	if err != nil {
		return err
	}
	updated, stats := po.Update(entries, existing)
	if err := po.WriteFile(target, updated); err != nil {
		return err
	}
	pterm.Success.Printf("Updated %s: %d fuzzy, %d inserted, %d removed, %d unchanged\n",
		target, stats.Updated, stats.Inserted, stats.Removed, stats.Kept)
	return nil
}

func menuPOExport(_ context.Context, a *app) error {
	input, err := ask("JSON or container file to export", "")
	if err != nil {
		return err
	}
	output, err := ask("Output PO file", replaceExt(input, ".po"))
	if err != nil {
		return err
	}

	entries, err := loadEntries(a.codec, a.logger, input)
	if err != nil {
		return err
	}
	f := po.Export(entries)
	if err := po.WriteFile(output, f); err != nil {
		return err
	}
	pterm.Success.Printf("Exported %d messages to %s\n", len(f.Messages), output)
	return nil
}

func menuMerge(_ context.Context, a *app) error {
	basePath, err := ask("Translated JSON (base)", "")
	if err != nil {
		return err
	}
	sourcePath, err := ask("New game JSON or container (source)", "")
	if err != nil {
		return err
	}
	output, err := ask("Output JSON file", "merged_delete_append_localization.json")
	if err != nil {
		return err
	}

	base, err := interchange.Load(basePath)
	if err != nil {
		return err
	}
	source, err := loadEntries(a.codec, a.logger, sourcePath)
	if err != nil {
		return err
	}
	res := interchange.Merge(base, source)
	if err := interchange.Save(output, res.Entries); err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %d entries to %s (kept %d, changed %d, added %d, removed %d)\n",
		len(res.Entries), output, res.Kept, res.Updated, res.Added, res.Removed)
	return nil
}

func menuUpdate(ctx context.Context, a *app) error {
	c, err := getContainer()
	if err != nil {
		return err
	}
	if a.config.GamePath == "" {
		pterm.Info.Println(`Enter the game folder, for example C:\Games\AION2_TW`)
		gamePath, err := ask("Game path", "")
		if err != nil {
			return err
		}
		if err := rememberGamePath(a, gamePath); err != nil {
			return err
		}
	}

	spinner, _ := pterm.DefaultSpinner.WithText("Downloading localization...").Start()
	target, err := c.NewUpdater(a.config.Updater, a.logger).Update(ctx, a.config.GamePath)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		return err
	}
	if spinner != nil {
		spinner.Success("Installed " + target)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
