package template

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/logger"
)

// Request is passed to a Handler.
type Request struct {
	Decision Decision
	Locator  string // URL, absolute path or package coordinate
	DestDir  string
	Spec     Spec // set for package decisions only
	Context  Context
}

// Handler materializes a template into Request.DestDir.
type Handler interface {
	Materialize(ctx context.Context, req Request) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req Request) error

// Materialize calls f.
func (f HandlerFunc) Materialize(ctx context.Context, req Request) error {
	return f(ctx, req)
}

// Dispatcher resolves a template reference and runs the matching handler.
type Dispatcher struct {
	Resolver *Resolver
	URL      Handler
	Local    Handler
	Package  Handler
	Logger   *zerolog.Logger
}

// Dispatch materializes raw into destDir and returns the flags produced by
// resolution. Finalize runs after the handler succeeds.
func (d *Dispatcher) Dispatch(ctx context.Context, raw string, tctx Context, destDir string) (Flags, error) {
	log := logger.OrNop(d.Logger)

	if raw == "" {
		raw = BlankTemplate
	}
	log.Info().Msgf("Processing template: %s", raw)

	decision, flags, err := d.Resolver.Resolve(raw, tctx)
	if err != nil {
		return Flags{}, err
	}

	req := Request{
		Decision: decision,
		Locator:  Locator(decision),
		DestDir:  destDir,
		Context:  flags.Apply(tctx),
	}

	var h Handler
	switch dec := decision.(type) {
	case URLSource:
		h = d.URL
	case LocalSource:
		h = d.Local
	case PackageSource:
		h = d.Package
		req.Spec = dec.Spec
	default:
		return Flags{}, fmt.Errorf("unsupported template decision %T", decision)
	}
	if h == nil {
		return Flags{}, fmt.Errorf("no handler for %s templates", decision.Kind())
	}

	log.Debug().
		Str("kind", decision.Kind().String()).
		Str("locator", req.Locator).
		Str("dest", destDir).
		Msg("materializing template")

	if err := h.Materialize(ctx, req); err != nil {
		return Flags{}, fmt.Errorf("materializing %s template %s: %w", decision.Kind(), req.Locator, err)
	}

	if err := Finalize(destDir); err != nil {
		return Flags{}, err
	}
	return flags, nil
}
