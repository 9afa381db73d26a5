// Package version holds build-time metadata for the ember CLI, filled
// in via -ldflags at release build time and left at sensible defaults
// for a dev build.
package version

import "github.com/fatih/color"

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = majorColor.Sprint("0") + "." + minorColor.Sprint("1") + "." + patchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Tagline is the short phrase the version command prints alongside the
// version number.
const Tagline = "a small flame, a smaller VM"
