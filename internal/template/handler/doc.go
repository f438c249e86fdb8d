// Package handler provides the template.Handler implementations for URL,
// local and npm package templates.
package handler
