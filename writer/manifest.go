/*
Copyright 2026 The Simflow authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	// packageMarker is the sentinel file that makes a directory an
	// importable module namespace. Traversal never descends into a
	// directory lacking it.
	packageMarker = "__init__.py"

	// moduleSuffix selects the files collected by traversal.
	moduleSuffix = ".py"
)

// entry is one manifest record: a relative path and its size in bytes.
type entry struct {
	path string
	size int64
}

// manifest accumulates the files to be bundled, the in-memory sources
// listing, and the running uncompressed byte total.
type manifest struct {
	entries []entry
	sources []string
	total   int64
}

func (m *manifest) add(path string, size int64) {
	m.entries = append(m.entries, entry{path: path, size: size})
	m.total += size
}

// sorted returns the manifest entries ordered lexicographically by path,
// which is the order they are written to the archive.
func (m *manifest) sorted() []entry {
	out := make([]entry, len(m.entries))
	copy(out, m.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

// collect produces the manifest for the given component: the explicit
// source files resolved under '<name>/', plus every Python module found
// by walking the current directory. An explicit path missing from disk is
// a hard failure, reported before any archive bytes are written.
func collect(name string, srcFiles []string) (*manifest, error) {
	m := &manifest{}

	for _, rel := range srcFiles {
		path, err := securejoin.SecureJoin(name, rel)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve source path %q: %w", rel, err)
		}
		fi, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &MissingSourceError{Path: path}
			}
			return nil, fmt.Errorf("failed to inspect source path %q: %w", path, err)
		}
		m.add(path, fi.Size())
	}

	if err := m.walkModules("."); err != nil {
		return nil, err
	}

	// A plain walk does not follow symlinks, so a component root that is
	// itself a symlink to a package directory needs a second pass to pick
	// up the files behind the link.
	if fi, err := os.Lstat(name); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		if target, err := os.Stat(name); err == nil && target.IsDir() {
			if err := m.walkModules(name); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// walkModules recursively collects Python modules under dir. The decision
// to descend into a subdirectory is computed before recursing: only
// directories carrying the package marker are entered. dir itself is
// always eligible.
func (m *manifest) walkModules(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %q: %w", dir, err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if isPackage(path) {
				if err := m.walkModules(path); err != nil {
					return err
				}
			}
			continue
		}
		if !strings.HasSuffix(e.Name(), moduleSuffix) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return fmt.Errorf("failed to inspect %q: %w", path, err)
		}
		m.add(path, fi.Size())
		m.sources = append(m.sources, path+"\n")
	}
	return nil
}

func isPackage(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, packageMarker))
	return err == nil
}
