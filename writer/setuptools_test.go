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
	"errors"
	"os"
	"strings"
	"testing"
)

func TestWriteSetupPy(t *testing.T) {
	chdir(t, t.TempDir())
	mkTree(t, map[string]string{
		"demo/data.txt":  "payload",
		"demo/extra.cfg": "cfg",
	})

	req := Request{
		Name:     "demo",
		Summary:  "A demo component.",
		Version:  "1.0",
		Loader:   "loader",
		SrcFiles: []string{"extra.cfg", "data.txt"},
		Requires: []Distribution{{Project: "numpy", Version: "1.2"}},
	}
	if err := writeSetupPy(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile("setup.py")
	if err != nil {
		t.Fatalf("setup.py not written: %v", err)
	}
	content := string(b)

	for _, want := range []string{
		"import setuptools\n",
		"    'data.txt',\n",
		"    'extra.cfg',\n",
		"    'numpy == 1.2',\n",
		"name='demo',",
		"version='1.0',",
		"description='''A demo component.''',",
		"'demo = demo.loader:load',",
		"'top = loader:load',",
		"'eggsecutable = " + eggsecutableHook + "',",
		"zip_safe=False,",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("setup.py missing %q:\n%s", want, content)
		}
	}

	// Package files are listed sorted.
	if strings.Index(content, "'data.txt'") > strings.Index(content, "'extra.cfg'") {
		t.Errorf("package_files not sorted:\n%s", content)
	}
}

func TestWriteSetupPy_MissingSource(t *testing.T) {
	chdir(t, t.TempDir())

	err := writeSetupPy(Request{
		Name:     "demo",
		Version:  "1.0",
		Loader:   "loader",
		SrcFiles: []string{"absent.txt"},
	})
	var missing *MissingSourceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSourceError, got %v", err)
	}
	if _, statErr := os.Stat("setup.py"); !os.IsNotExist(statErr) {
		t.Fatal("setup.py must not be written when a source file is missing")
	}
}
