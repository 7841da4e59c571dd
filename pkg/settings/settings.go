// Package settings holds build metadata and the per-run options shared by
// the imgx CLI and the embedding API.
package settings

// CliBinaryName is the canonical binary name.
const CliBinaryName = "imgx"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// SourceKind says where the gallery items came from.
type SourceKind string

const (
	SourceFile  SourceKind = "file"
	SourceDir   SourceKind = "dir"
	SourceStdin SourceKind = "stdin"
)

// Run holds the options of a single invocation.
type Run struct {
	MinLogLevel int8
	LogFile     string
	Source      SourceKind
	Path        string
	Interactive bool
	NoColor     bool
}

// NewCliParams returns the defaults for an interactive CLI run.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Interactive: true,
	}
}
