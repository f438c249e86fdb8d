// Package tasks executes the CLI task contract: create (an application or a
// component), build and add. A Task is validated before it runs and any
// failure is returned to the caller unchanged.
package tasks
