// Package fetch downloads remote resources with retries and unpacks zip and
// gzip-compressed tar archives into a directory.
package fetch
