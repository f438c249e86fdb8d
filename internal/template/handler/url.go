package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/fetch"
	"github.com/ojet-labs/ojet/internal/fsutil"
	"github.com/ojet-labs/ojet/internal/logger"
	"github.com/ojet-labs/ojet/internal/template"
)

// ExcludedNames are never copied or extracted into an application.
var ExcludedNames = fsutil.DefaultExcludes

// URLHandler downloads a zip or tar.gz template archive and unpacks it.
type URLHandler struct {
	Fetcher *fetch.Client
	Logger  *zerolog.Logger
}

// Materialize implements template.Handler.
func (h *URLHandler) Materialize(ctx context.Context, req template.Request) error {
	log := logger.OrNop(h.Logger)
	fetcher := h.Fetcher
	if fetcher == nil {
		fetcher = fetch.New(fetch.WithLogger(log))
	}

	tmp, err := os.MkdirTemp("", "ojet-template-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	archive := filepath.Join(tmp, "template-archive")
	log.Info().Msgf("Downloading template from %s", req.Locator)
	if err := fetcher.Download(ctx, req.Locator, archive); err != nil {
		return err
	}

	if err := fetch.Extract(archive, req.DestDir, fetch.Options{
		StripTopLevel: true,
		Exclude:       ExcludedNames,
	}); err != nil {
		return fmt.Errorf("extracting template: %w", err)
	}
	return nil
}
