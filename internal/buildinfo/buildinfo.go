// Package buildinfo carries release metadata injected via ldflags.
package buildinfo

// Version is set by the release build; empty for local/dev builds.
var Version = ""
