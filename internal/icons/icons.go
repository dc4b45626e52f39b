// Package icons resolves gutter icon references and prepares the icon
// directory the host looks them up in.
package icons

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kateleext/vcsgutter/internal/config"
)

// PackageDir is the directory name icons are published under.
const PackageDir = "VCS Gutter"

// ThemeDir must exist under the packages root before the host can resolve
// packaged icons.
const ThemeDir = "Theme - Default"

// Path returns the host-relative icon reference for name.
func Path(caps config.Capabilities, name string) string {
	return caps.IconRoot + "/" + PackageDir + "/icons/" + name + string(caps.IconExtension)
}

// EnsureThemeDir creates <packagesPath>/Theme - Default when it is missing
// and returns its path.
func EnsureThemeDir(packagesPath string) (string, error) {
	dir := filepath.Join(packagesPath, ThemeDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating icon directory %s: %w", dir, err)
	}
	return dir, nil
}
