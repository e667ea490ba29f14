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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-logr/logr"

	"github.com/simflow/eggsaver/logger"
)

const setupPyFormat = `
entry_points = {
    'simflow.top' : [
        'top = %[2]s:load',
    ],
    'simflow.components' : [
        '%[1]s = %[1]s.%[2]s:load',
    ],
    'setuptools.installation' : [
        'eggsecutable = ` + eggsecutableHook + `',
    ],
}

setuptools.setup(
    name='%[1]s',
    description='''%[3]s''',
    version='%[4]s',
    packages=setuptools.find_packages(),
    package_data={'%[1]s' : package_files},
    zip_safe=False,
    install_requires=requirements,
    entry_points=entry_points,
)
`

// WriteViaSetuptools writes an egg by delegating to setuptools: it
// generates a setup.py in the working directory and runs
// 'python setup.py bdist_egg' against the destination directory. Tool
// output is streamed line by line to the log sink at debug level; on a
// non-zero exit the buffered output is replayed at error level and a
// SetuptoolsError is returned. Returns the derived egg filename.
func (w *Writer) WriteViaSetuptools(ctx context.Context, req Request, log logr.Logger) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}
	if err := writeSetupPy(req); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "python", "setup.py", "bdist_egg", "-d", w.DestDir)
	// 'python' might not recognize '-u', so unbuffer via the environment.
	cmd.Env = append(os.Environ(), "PYTHONUNBUFFERED=1")

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	var output []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), " \t")
			log.V(logger.DebugLevel).Info(line)
			output = append(output, line)
		}
	}()

	runErr := cmd.Run()
	pw.Close()
	<-done

	if runErr != nil {
		for _, line := range output {
			log.Error(nil, line)
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			err := &SetuptoolsError{ExitCode: exitErr.ExitCode()}
			log.Error(err, "egg write via setuptools failed")
			return "", err
		}
		return "", fmt.Errorf("failed to run setup.py: %w", runErr)
	}

	return Filename(req.Name, req.Version, w.Runtime), nil
}

// writeSetupPy generates the setup.py file used by the delegated path.
// Explicit source files are checked for existence up front, matching the
// direct path's pre-output failure semantics.
func writeSetupPy(req Request) error {
	var buf strings.Builder
	buf.WriteString("import setuptools\n")

	buf.WriteString("\npackage_files = [\n")
	srcFiles := make([]string, len(req.SrcFiles))
	copy(srcFiles, req.SrcFiles)
	sort.Strings(srcFiles)
	for _, rel := range srcFiles {
		path := filepath.Join(req.Name, rel)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return &MissingSourceError{Path: path}
			}
			return fmt.Errorf("failed to inspect source path %q: %w", path, err)
		}
		fmt.Fprintf(&buf, "    '%s',\n", rel)
	}
	buf.WriteString("]\n")

	buf.WriteString("\nrequirements = [\n")
	for _, dist := range req.Requires {
		fmt.Fprintf(&buf, "    '%s == %s',\n", dist.Project, dist.Version)
	}
	buf.WriteString("]\n")

	fmt.Fprintf(&buf, setupPyFormat,
		req.Name, req.Loader, strings.TrimSpace(req.Summary), req.Version)

	return os.WriteFile("setup.py", []byte(buf.String()), 0o644)
}
