package handler

import (
	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/fetch"
	"github.com/ojet-labs/ojet/internal/npm"
	"github.com/ojet-labs/ojet/internal/template"
)

// NewDispatcher wires the three handlers to a resolver.
func NewDispatcher(resolver *template.Resolver, fetcher *fetch.Client, client *npm.Client, log *zerolog.Logger) *template.Dispatcher {
	return &template.Dispatcher{
		Resolver: resolver,
		URL:      &URLHandler{Fetcher: fetcher, Logger: log},
		Local:    &LocalHandler{Logger: log},
		Package:  &PackageHandler{Client: client, Logger: log},
		Logger:   log,
	}
}
