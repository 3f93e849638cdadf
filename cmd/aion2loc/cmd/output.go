package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/Holastor/AION-2-Localization/pkg/query"
	"github.com/Holastor/AION-2-Localization/pkg/snapshot"
)

// outputJSON writes v as indented JSON
func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// outputRecordsTable lists up to limit records; limit <= 0 lists all
func outputRecordsTable(w io.Writer, records []codec.Record, limit int) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "#\tKEY\tKEY TYPE\tVALUE TYPE\tVALUE")
	for i, r := range records {
		if limit > 0 && i >= limit {
			fmt.Fprintf(tw, "...\t%d more\t\t\t\n", len(records)-limit)
			break
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			truncate(r.Key, 60),
			r.KeyEncoding,
			r.ValueEncoding,
			truncate(oneLine(r.Value), 50))
	}
}

// outputResultsTable lists search results with their document position
func outputResultsTable(w io.Writer, results []query.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matching records")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "#\tKEY\tVALUE\tTRANSLATION")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			r.Index+1,
			truncate(r.Entry.Key, 60),
			truncate(oneLine(r.Entry.Value), 40),
			truncate(oneLine(r.Entry.Translation), 40))
	}
}

// outputDiagnosticsTable lists diagnostics, then a count per kind
func outputDiagnosticsTable(w io.Writer, diags codec.Diagnostics, limit int) {
	if len(diags) == 0 {
		fmt.Fprintln(w, "No diagnostics")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tKIND\tMESSAGE")
	for i, d := range diags {
		if limit > 0 && i >= limit {
			fmt.Fprintf(tw, "...\t%d more\t\n", len(diags)-limit)
			break
		}
		fmt.Fprintf(tw, "%#x\t%s\t%s\n", d.Offset, d.Kind, d.Message)
	}
	tw.Flush()

	counts := diags.ByKind()
	kinds := make([]codec.DiagnosticKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Fprintln(w)
	for _, k := range kinds {
		fmt.Fprintf(w, "%-20s %d\n", k.String()+":", counts[k])
	}
}

// outputSnapshotsTable lists snapshot metadata
func outputSnapshotsTable(w io.Writer, metas []snapshot.Meta) {
	if len(metas) == 0 {
		fmt.Fprintln(w, "No snapshots found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tENTRIES\tSOURCE\tCREATED")
	for _, m := range metas {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			m.ID,
			m.Name,
			m.Entries,
			truncate(m.Source, 40),
			m.Created.Local().Format(time.DateTime))
	}
}

// outputDelta prints a key level diff
func outputDelta(w io.Writer, d interchange.Delta, limit int) {
	fmt.Fprintf(w, "Added: %d  Removed: %d  Changed: %d\n", len(d.Added), len(d.Removed), len(d.Changed))
	printKeys := func(prefix string, keys []string) {
		for i, k := range keys {
			if limit > 0 && i >= limit {
				fmt.Fprintf(w, "%s ... %d more\n", prefix, len(keys)-limit)
				return
			}
			fmt.Fprintf(w, "%s %s\n", prefix, k)
		}
	}
	printKeys("+", d.Added)
	printKeys("-", d.Removed)
	for i, c := range d.Changed {
		if limit > 0 && i >= limit {
			fmt.Fprintf(w, "~ ... %d more\n", len(d.Changed)-limit)
			break
		}
		fmt.Fprintf(w, "~ %s: %q -> %q\n", c.Key, truncate(c.OldValue, 40), truncate(c.NewValue, 40))
	}
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func oneLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n':
			out = append(out, '⏎')
		case '\r', '\t':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
