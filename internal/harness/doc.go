// Package harness checks a generated application from the outside.
//
// Each Check is an independent assertion over an application directory.
// Run executes every check and collects the outcomes into a Report; a
// failing check never stops the ones after it. VDOMSuite assembles the
// checks for a VDOM application in the order they are meant to run:
// scaffold shape, component creation, builds, and webpack bundling.
package harness
