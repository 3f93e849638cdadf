// Package updater downloads the published localization pak into a game install.
package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/config"
	"github.com/Holastor/AION-2-Localization/pkg/fsutil"
	"go.uber.org/zap"
)

var (
	// ErrBadStatus is returned when the server does not answer with 2xx
	ErrBadStatus = errors.New("unexpected download status")
	// ErrNoGamePath is returned when no game directory is known
	ErrNoGamePath = errors.New("game path is not set")
)

// Updater fetches URL into <game>/<Subpath>/<Filename>
type Updater struct {
	Client   *http.Client
	URL      string
	Subpath  string
	Filename string
	Logger   *zap.Logger
}

// New creates an updater from configuration
func New(cfg config.Updater, logger *zap.Logger) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{
		Client:   &http.Client{Timeout: cfg.Timeout},
		URL:      cfg.URL,
		Subpath:  cfg.TargetSubpath,
		Filename: cfg.TargetFilename,
		Logger:   logger,
	}
}

// Target returns the destination path for gamePath
func (u *Updater) Target(gamePath string) string {
	return filepath.Join(gamePath, u.Subpath, u.Filename)
}

// Update downloads the pak and replaces the installed copy. The existing file
// is only replaced once the whole body has been received.
func (u *Updater) Update(ctx context.Context, gamePath string) (string, error) {
	gamePath = strings.Trim(strings.TrimSpace(gamePath), `"`)
	if gamePath == "" {
		return "", ErrNoGamePath
	}
	logger := u.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}

	target := u.Target(filepath.Clean(gamePath))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create target directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	logger.Info("downloading localization", zap.String("url", u.URL), zap.String("target", target))
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", u.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	var written int64
	err = fsutil.WriteAtomic(target, 0644, func(w io.Writer) error {
		n, err := io.Copy(w, resp.Body)
		written = n
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to install %s: %w", target, err)
	}

	logger.Info("localization updated", zap.String("target", target), zap.Int64("bytes", written))
	return target, nil
}
