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

// MissingSourceError is returned when an explicitly requested source file
// does not exist on disk. It is always raised before any archive bytes
// are written.
type MissingSourceError struct {
	Path string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("source file %q does not exist", e.Path)
}

// SetuptoolsError is returned when the delegated setuptools build exits
// with a non-zero code. The tool's buffered output has been replayed to
// the log sink at error level before this is returned.
type SetuptoolsError struct {
	ExitCode int
}

func (e *SetuptoolsError) Error() string {
	return fmt.Sprintf("setup.py failed with exit code %d, check log for info", e.ExitCode)
}
