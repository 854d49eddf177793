package version

// Overridden at build time via -ldflags "-X .../internal/version.Version=...".
var (
	Version   string
	Commit    string
	BuildDate string
)

// Info is the resolved build metadata.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// Get returns build info, falling back to "dev" for unset fields.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, BuildDate: BuildDate}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "dev"
	}
	if info.BuildDate == "" {
		info.BuildDate = "dev"
	}
	return info
}
