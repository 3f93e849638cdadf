package po

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	pofmt "github.com/chai2010/gettext-go/po"
	"go.uber.org/zap"
)

// ErrNoFiles is returned by Combine when the directory holds no PO files
var ErrNoFiles = errors.New("no .po files found")

// Combine merges every *.po file below dir into one file. The first file
// with a header supplies the header. When a key appears in several files the
// first message wins. Files that cannot be parsed are skipped and logged.
func Combine(dir string, logger *zap.Logger) (*pofmt.File, int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".po") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, 0, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}

	master := &pofmt.File{}
	haveHeader := false
	seen := make(map[string]bool)
	added := 0

	for _, path := range paths {
		part, err := ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable PO file", zap.String("file", path), zap.Error(err))
			continue
		}

		if !haveHeader && hasHeader(part.MimeHeader) {
			master.MimeHeader = part.MimeHeader
			haveHeader = true
		}

		for _, m := range part.Messages {
			if m.MsgId == "" {
				continue
			}
			ctx := strings.TrimSpace(m.MsgContext)
			if seen[ctx] {
				continue
			}
			seen[ctx] = true
			master.Messages = append(master.Messages, m)
			added++
		}
		logger.Debug("combined PO file", zap.String("file", path), zap.Int("total", added))
	}

	if !haveHeader {
		master.MimeHeader = StandardHeader()
	}
	return master, added, nil
}

func hasHeader(h pofmt.Header) bool {
	return h.ProjectIdVersion != "" || h.ContentType != "" || h.Language != ""
}
