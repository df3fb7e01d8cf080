// Package manifest reads the crate metadata that drives a release:
// the package name and version declared in Cargo.toml.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Crate is the locally declared identity of the package being released.
// Version is read once at startup and treated as immutable afterwards.
type Crate struct {
	Name    string
	Version string
}

type cargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// Load parses the Cargo.toml at path and extracts package.name and
// package.version. A missing file, malformed TOML, or an empty name or
// version is an error; the release procedure must never run with an
// undefined version.
func Load(path string) (Crate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Crate{}, fmt.Errorf("read manifest: %w", err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (Crate, error) {
	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Crate{}, fmt.Errorf("parse %s: %w", path, err)
	}
	name := strings.TrimSpace(m.Package.Name)
	version := strings.TrimSpace(m.Package.Version)
	if name == "" {
		return Crate{}, fmt.Errorf("parse %s: package.name is missing or empty", path)
	}
	if version == "" {
		return Crate{}, fmt.Errorf("parse %s: package.version is missing or empty", path)
	}
	return Crate{Name: name, Version: version}, nil
}
