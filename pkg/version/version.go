package version

// Version is the current version of studysearch.
const Version = "1.0.0"

// BuildVersion returns the version string for display.
func BuildVersion() string {
	return "studysearch version " + Version
}

// APIVersion returns just the version number for API responses.
func APIVersion() string {
	return Version
}
