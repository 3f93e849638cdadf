package po

import (
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	pofmt "github.com/chai2010/gettext-go/po"
)

// UpdateStats counts what Update did to each message
type UpdateStats struct {
	Kept     int // key and source value unchanged
	Updated  int // source value changed, marked fuzzy
	Inserted int
	Removed  int
}

// Update rebuilds existing from a freshly unpacked document. The document
// decides which keys exist and in what order. Unchanged messages are kept with
// their translation. When the source value changed the message is replaced,
// flagged fuzzy and the previous translation is preserved in the extracted
// comment. Messages whose key disappeared are dropped.
func Update(entries []interchange.Entry, existing *pofmt.File) (*pofmt.File, UpdateStats) {
	out := &pofmt.File{MimeHeader: existing.MimeHeader}
	if out.MimeHeader.ProjectIdVersion == "" && out.MimeHeader.ContentType == "" {
		out.MimeHeader = StandardHeader()
	}

	known := make(map[string]pofmt.Message, len(existing.Messages))
	for _, m := range existing.Messages {
		key := strings.TrimSpace(m.MsgContext)
		if key == "" || m.MsgId == "" {
			continue
		}
		known[key] = m
	}

	var stats UpdateStats
	for _, e := range entries {
		key := strings.TrimSpace(e.Key)
		if key == "" || e.Value == "" {
			continue
		}

		prev, ok := known[key]
		if !ok {
			out.Messages = append(out.Messages, message(e))
			stats.Inserted++
			continue
		}
		delete(known, key)

		if strings.TrimSpace(prev.MsgId) == strings.TrimSpace(e.Value) {
			out.Messages = append(out.Messages, prev)
			stats.Kept++
			continue
		}

		m := message(e)
		m.ExtractedComment = prev.ExtractedComment
		if old := strings.TrimSpace(prev.MsgStr); old != "" {
			note := "(OLD TRANSLATION: " + old + ")"
			if m.ExtractedComment != "" {
				m.ExtractedComment += "\n" + note
			} else {
				m.ExtractedComment = note
			}
		}
		m.Flags = []string{FuzzyFlag}
		out.Messages = append(out.Messages, m)
		stats.Updated++
	}

	stats.Removed = len(known)
	return out, stats
}
