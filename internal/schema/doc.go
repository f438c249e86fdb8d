// Package schema validates JSON documents against embedded JSON Schemas and
// reports violations with English messages.
package schema
