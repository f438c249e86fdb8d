// Package appconfig reads and writes the JSON files at the root of a
// generated application: oraclejetconfig.json, package.json and
// path_mapping.json. Rewrites preserve fields this package does not model.
// It also resolves the folder layout an application's config describes
// and validates oraclejetconfig.json against an embedded JSON Schema.
package appconfig
