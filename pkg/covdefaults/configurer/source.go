package configurer

import (
	"os"
	"path/filepath"

	"github.com/jamesainslie/covdefaults/pkg/covdefaults/pyenv"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/settings"
)

// setSource resolves the source-root setting. Installed-package
// resolution always runs when packages are configured so its failure
// modes fire and path equivalences are registered, but a caller-set
// run:source is never overwritten.
func (c *Configurer) setSource(store settings.Store) error {
	resolved, err := c.resolvePackages(store)
	if err != nil {
		return err
	}
	if existing := settings.Strings(store, "run:source"); len(existing) > 0 {
		return nil
	}
	store.SetOption("run:source", append(resolved, c.workdir))
	return nil
}

// resolvePackages locates every configured installed package among
// the candidate library-install directories, returning their install
// paths and registering a path-equivalence entry for each package
// with a destination. It fails fast naming the offending package or
// missing destination path.
func (c *Configurer) resolvePackages(store settings.Store) ([]string, error) {
	if len(c.opts.InstalledPackages) == 0 {
		return nil, nil
	}

	candidates := pyenv.InstallPaths(c.opts.LibraryPaths, c.workdir)
	var source []string
	for _, pkg := range c.opts.InstalledPackages {
		var destPath string
		if pkg.Dest != "" {
			destPath = filepath.Join(pkg.Dest, pkg.Name)
			if _, err := os.Stat(destPath); err != nil {
				return nil, &pyenv.MissingSourceError{Path: destPath}
			}
		}

		at, ok := pyenv.Locate(pkg.Name, candidates)
		if !ok {
			return nil, &pyenv.PackageNotFoundError{Package: pkg.Name, Searched: candidates}
		}
		source = append(source, at)
		c.log.Debug("resolved installed package", "package", pkg.Name, "path", at)

		if destPath != "" {
			store.Paths()[pkg.Name] = []string{destPath, at}
		}
	}
	return source, nil
}
