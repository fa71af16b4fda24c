// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Name is the program name shown in the header and --version output.
const Name = "ls-orrery"

// Milestones:
// 0.3.0 - Mov system, comets, config file and ORRERY_* environment support
// 0.2.0 - Mouse picking, facts and video panels, zoom easing
// 0.1.0 - Initial release: solar and proxima systems, orbit camera, headless frame dump

// String returns the name and version.
func String() string {
	return Name + " " + Version
}
