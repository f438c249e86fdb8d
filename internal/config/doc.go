// Package config manages user-level settings stored at ~/.ojet/config.yaml.
// It loads, reads, and writes keys such as the npm registry URL and the
// package coordinate named templates are fetched from. Every key can be
// overridden with an OJET_-prefixed environment variable.
package config
