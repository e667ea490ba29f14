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
	"strings"
	"testing"
)

func TestShellPrefix(t *testing.T) {
	prefix := shellPrefix("demo-1.0-py3.11.egg", RuntimeVersion{Major: 3, Minor: 11})

	if !strings.HasPrefix(prefix, "#!/bin/sh\n") {
		t.Fatalf("prefix does not start with a shebang:\n%s", prefix)
	}
	if !strings.HasSuffix(prefix, "fi\n") {
		t.Fatalf("prefix does not end the shell conditional:\n%s", prefix)
	}
	if got := strings.Count(prefix, "demo-1.0-py3.11.egg"); got != 2 {
		t.Errorf("expected the egg name twice (guard and rename hint), found %d occurrences", got)
	}
	if !strings.Contains(prefix, "exec python3.11 -c") {
		t.Errorf("prefix does not exec the pinned runtime:\n%s", prefix)
	}
	if !strings.Contains(prefix, "sys.path.insert(0, os.path.abspath('$0'))") {
		t.Errorf("prefix does not insert the egg on the module search path:\n%s", prefix)
	}
	if !strings.Contains(prefix, "exec false") {
		t.Errorf("prefix does not fail on a renamed egg:\n%s", prefix)
	}
}

func TestNeedsZip64(t *testing.T) {
	if needsZip64(zipSizeLimit) {
		t.Error("total at the standard limit must not require ZIP64")
	}
	if !needsZip64(zipSizeLimit + 1) {
		t.Error("total above the standard limit must require ZIP64")
	}
	if needsZip64(0) {
		t.Error("empty archive must not require ZIP64")
	}
}
