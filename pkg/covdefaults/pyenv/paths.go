// Package pyenv locates installed-package directories in
// virtualenv-style library layouts. All access is read-only.
package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envDirNames are the conventional virtual-environment folder names
// probed under the working directory when no explicit library paths
// are configured.
var envDirNames = []string{".venv", "venv"}

// PackageNotFoundError reports a configured package that could not be
// located in any candidate library-install directory.
type PackageNotFoundError struct {
	Package  string
	Searched []string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("installed package %q not found in any library path (searched %d)", e.Package, len(e.Searched))
}

// MissingSourceError reports a package destination that does not
// exist on disk.
type MissingSourceError struct {
	Path string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("package source path %q does not exist", e.Path)
}

// InstallPaths returns candidate library-install directories, in
// precedence order: caller-configured extras, the active virtual
// environment ($VIRTUAL_ENV), then conventional venv folders under
// workdir. Only directories that exist are returned.
func InstallPaths(extra []string, workdir string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		if isDir(path) {
			seen[path] = struct{}{}
			out = append(out, path)
		}
	}

	for _, p := range extra {
		add(p)
	}
	if venv := os.Getenv("VIRTUAL_ENV"); venv != "" {
		for _, sp := range sitePackages(venv) {
			add(sp)
		}
	}
	for _, name := range envDirNames {
		for _, sp := range sitePackages(filepath.Join(workdir, name)) {
			add(sp)
		}
	}
	return out
}

// sitePackages probes the posix (lib/pythonX.Y/site-packages) and
// windows (Lib/site-packages) virtualenv layouts under prefix.
func sitePackages(prefix string) []string {
	var out []string
	libDir := filepath.Join(prefix, "lib")
	if entries, err := os.ReadDir(libDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() && strings.HasPrefix(entry.Name(), "python") {
				sp := filepath.Join(libDir, entry.Name(), "site-packages")
				if isDir(sp) {
					out = append(out, sp)
				}
			}
		}
	}
	if sp := filepath.Join(prefix, "Lib", "site-packages"); isDir(sp) {
		out = append(out, sp)
	}
	return out
}

// Locate finds a package below any candidate directory, checking for
// a package directory first and a single-module file second.
func Locate(pkg string, candidates []string) (string, bool) {
	for _, dir := range candidates {
		base := filepath.Join(dir, pkg)
		for _, suffix := range []string{"", ".py"} {
			at := base + suffix
			if _, err := os.Stat(at); err == nil {
				return at, true
			}
		}
	}
	return "", false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
