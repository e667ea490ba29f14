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

import "fmt"

// Distribution identifies a dependency of the packaged component as a
// (project, version) pair.
type Distribution struct {
	Project string
	Version string
}

// Request describes one egg to be written. It is treated as immutable for
// the duration of a write.
type Request struct {
	// Name is the component identifier; it prefixes explicit source
	// paths and becomes the archive's top-level name.
	Name string

	// Summary is free text recorded in the package header.
	Summary string

	// Version is the component version string.
	Version string

	// Loader is the module identifier the entry points dispatch to.
	Loader string

	// SrcFiles are extra source files, relative to the '<Name>/'
	// directory, bundled in addition to discovered Python modules.
	SrcFiles []string

	// Requires lists the component's distribution dependencies.
	Requires []Distribution
}

func (r Request) validate() error {
	if r.Name == "" {
		return fmt.Errorf("request name cannot be empty")
	}
	if r.Version == "" {
		return fmt.Errorf("request version cannot be empty")
	}
	if r.Loader == "" {
		return fmt.Errorf("request loader cannot be empty")
	}
	return nil
}
