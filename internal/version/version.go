// Package version centralizes fastqscope's version identifiers.
package version

// Version system: vMAJOR.MINOR.PATCH
const (
	Main     = "v1.0.0"
	Analyzer = "v1.0.0"
	Store    = "v1.0.0"
	HTML     = "v0.1.0"
)
