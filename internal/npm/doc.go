// Package npm reads package metadata from an npm registry, picks the version
// matching a semver range and keeps downloaded tarballs in an on-disk cache.
package npm
