// Package version carries build-time version info.
package version

// Version is set via -ldflags at release time.
var Version = "compiled"

func Get() string {
	return Version
}

// ImageSchemaVersion increments when Dockerfile generation changes require image rebuilds.
//
// Bump for:
//   - Dockerfile generation logic changes
//   - Label format changes
//   - Entrypoint/CMD format changes
//
// Don't bump for:
//   - CLI-only changes
//   - Bug fixes not affecting image content
const ImageSchemaVersion = 1

const ImageSchemaVersionLabel = "dloenv.image_schema_version"
