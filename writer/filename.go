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
	"strconv"
	"strings"
)

// RuntimeVersion describes the Python runtime of the packaging
// environment. It is supplied by the caller rather than looked up from
// the process, so the egg filename and eggsecutable interpreter can be
// pinned in tests.
type RuntimeVersion struct {
	Major int
	Minor int
}

// String returns the 'major.minor' version tag.
func (v RuntimeVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseRuntimeVersion parses a 'major.minor' version string.
func ParseRuntimeVersion(s string) (RuntimeVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return RuntimeVersion{}, fmt.Errorf("invalid runtime version %q: expected 'major.minor'", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return RuntimeVersion{}, fmt.Errorf("invalid runtime version %q: bad major component", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return RuntimeVersion{}, fmt.Errorf("invalid runtime version %q: bad minor component", s)
	}
	return RuntimeVersion{Major: major, Minor: minor}, nil
}

// Filename returns the name for an egg file as generated by setuptools:
// '<name>-<version>-py<major.minor>.egg'. It is a pure function of its
// inputs.
func Filename(name, version string, rt RuntimeVersion) string {
	return fmt.Sprintf("%s-%s-py%s.egg", name, version, rt)
}
