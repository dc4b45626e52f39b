package config

const (
	// DefaultHostVersion is assumed when the caller does not report one.
	DefaultHostVersion = 3211

	minimapMarkersSince = 3000
	packagedIconsSince  = 3014
)

// IconExtension is the file extension appended to icon names.
type IconExtension string

const (
	IconExtNone IconExtension = ""
	IconExtPNG  IconExtension = ".png"
)

// Capabilities describes what the host display surface supports. It is
// resolved once from the host version and passed down unchanged.
type Capabilities struct {
	SupportsMinimapMarkers bool
	IconExtension          IconExtension
	// IconRoot prefixes icon paths: ".." on legacy hosts, "Packages" after.
	IconRoot string
}

// ResolveCapabilities maps a host version number to its capabilities.
func ResolveCapabilities(hostVersion int) Capabilities {
	caps := Capabilities{
		SupportsMinimapMarkers: hostVersion >= minimapMarkersSince,
		IconExtension:          IconExtPNG,
		IconRoot:               "Packages",
	}
	if hostVersion < packagedIconsSince {
		caps.IconExtension = IconExtNone
		caps.IconRoot = ".."
	}
	return caps
}
