package handler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/fetch"
	"github.com/ojet-labs/ojet/internal/logger"
	"github.com/ojet-labs/ojet/internal/npm"
	"github.com/ojet-labs/ojet/internal/template"
)

// PackageHandler installs a named template from the templates package. Only
// the <name>/<type> folder of the package is extracted.
type PackageHandler struct {
	Client *npm.Client
	Logger *zerolog.Logger
}

// Materialize implements template.Handler.
func (h *PackageHandler) Materialize(ctx context.Context, req template.Request) error {
	log := logger.OrNop(h.Logger)
	client := h.Client
	if client == nil {
		client = npm.New(npm.WithLogger(log))
	}

	coord, err := npm.ParseCoordinate(req.Locator)
	if err != nil {
		return err
	}

	tarball, version, err := client.Tarball(ctx, coord)
	if err != nil {
		return err
	}
	log.Info().Msgf("Using %s@%s template %s", coord.Name, version, req.Spec.Dir())

	if err := fetch.Extract(tarball, req.DestDir, fetch.Options{
		StripTopLevel: true,
		Subdir:        req.Spec.Dir(),
		Exclude:       ExcludedNames,
	}); err != nil {
		return fmt.Errorf("extracting template %s from %s@%s: %w", req.Spec.Dir(), coord.Name, version, err)
	}
	return nil
}
