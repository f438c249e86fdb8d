// Package build stages an application's sources into its web staging
// folder, rewrites the script injector block of index.html and, for release
// builds, runs the configured bundler.
package build
