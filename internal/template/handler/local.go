package handler

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/fetch"
	"github.com/ojet-labs/ojet/internal/fsutil"
	"github.com/ojet-labs/ojet/internal/logger"
	"github.com/ojet-labs/ojet/internal/template"
)

// LocalHandler copies a template directory, or unpacks a local archive.
type LocalHandler struct {
	Logger *zerolog.Logger
}

// Materialize implements template.Handler.
func (h *LocalHandler) Materialize(_ context.Context, req template.Request) error {
	log := logger.OrNop(h.Logger)

	info, err := os.Stat(req.Locator)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", req.Locator, err)
	}

	if !info.IsDir() {
		log.Info().Msgf("Extracting template archive %s", req.Locator)
		if err := fetch.Extract(req.Locator, req.DestDir, fetch.Options{
			StripTopLevel: true,
			Exclude:       ExcludedNames,
		}); err != nil {
			return fmt.Errorf("extracting %s: %w", req.Locator, err)
		}
		return nil
	}

	if fsutil.Within(req.DestDir, req.Locator) {
		return fmt.Errorf("template %s contains the destination %s", req.Locator, req.DestDir)
	}

	log.Info().Msgf("Copying template from %s", req.Locator)
	if err := fsutil.CopyDir(req.Locator, req.DestDir, ExcludedNames); err != nil {
		return fmt.Errorf("copying %s to %s: %w", req.Locator, req.DestDir, err)
	}
	return nil
}
