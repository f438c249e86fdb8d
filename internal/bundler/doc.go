// Package bundler defines the Bundler interface used by release builds and
// provides the webpack implementation. Dispatch selects the bundler named by
// the "bundler" field of oraclejetconfig.json.
package bundler
