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
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// GarbageCountLimit is the maximum number of egg files inspected during a
// single garbage collection.
const GarbageCountLimit = 1000

// eggFile pairs an egg path with its creation timestamp for retention
// decisions.
type eggFile struct {
	path      string
	createdAt time.Time
}

// GetGarbageFiles returns the egg files of the named component that need
// to be garbage collected. Garbage files are determined based on the
// below flow:
// 1. collect all egg files with an expired ttl
// 2. if we satisfy maxItemsToBeRetained, then return
// 3. else, collect the oldest egg files till the latest n files remain,
// where n=maxItemsToBeRetained
func (w *Writer) GetGarbageFiles(name string, totalCountLimit, maxItemsToBeRetained int, ttl time.Duration) ([]string, error) {
	entries, err := os.ReadDir(w.DestDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read destination dir: %w", err)
	}

	now := time.Now().UTC()
	var garbageFiles []string
	var eggs []eggFile
	for _, e := range entries {
		base := e.Name()
		// Lock files are skipped here; orphaned locks are removed
		// together with their egg in GarbageCollect.
		if e.IsDir() || !strings.HasPrefix(base, name+"-") || !strings.HasSuffix(base, ".egg") {
			continue
		}
		if len(eggs) >= totalCountLimit {
			return nil, fmt.Errorf("reached file inspection limit, already inspected: %d", totalCountLimit)
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to inspect %q: %w", base, err)
		}
		egg := eggFile{path: w.localPath(base), createdAt: info.ModTime().UTC()}
		eggs = append(eggs, egg)
		if now.Sub(egg.createdAt) > ttl {
			garbageFiles = append(garbageFiles, egg.path)
		}
	}

	// We already collected enough garbage files to satisfy the no. of max
	// items that are supposed to be retained, so exit early.
	if len(eggs)-len(garbageFiles) <= maxItemsToBeRetained {
		return garbageFiles, nil
	}

	// Sort all eggs oldest first and collect the surplus beyond the
	// retention count, skipping the ones already expired above.
	sort.Slice(eggs, func(i, j int) bool { return eggs[i].createdAt.Before(eggs[j].createdAt) })
	expired := make(map[string]struct{}, len(garbageFiles))
	for _, p := range garbageFiles {
		expired[p] = struct{}{}
	}
	surplus := len(eggs) - len(garbageFiles) - maxItemsToBeRetained
	for _, egg := range eggs {
		if surplus <= 0 {
			break
		}
		if _, ok := expired[egg.path]; ok {
			continue
		}
		garbageFiles = append(garbageFiles, egg.path)
		surplus--
	}

	return garbageFiles, nil
}

// GarbageCollect removes all garbage egg files of the named component in
// the destination directory according to the writer's retention options.
// It returns the deleted paths.
func (w *Writer) GarbageCollect(ctx context.Context, name string, timeout time.Duration) ([]string, error) {
	delFilesChan := make(chan []string)
	errChan := make(chan error)
	// Abort if it takes more than the provided timeout duration.
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go func() {
		garbageFiles, err := w.GetGarbageFiles(name, GarbageCountLimit, w.EggRetentionRecords, w.EggRetentionTTL)
		if err != nil {
			errChan <- err
			return
		}
		var errs error
		var deleted []string
		for _, file := range garbageFiles {
			if err := os.Remove(file); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			deleted = append(deleted, file)
			// If a lock file exists for this garbage egg, remove that too.
			lockFile := file + ".lock"
			if _, err := os.Lstat(lockFile); err == nil {
				if err := os.Remove(lockFile); err != nil {
					errs = multierr.Append(errs, err)
				}
			}
		}
		if errs != nil {
			errChan <- errs
			return
		}
		delFilesChan <- deleted
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case delFiles := <-delFilesChan:
		return delFiles, nil
	case err := <-errChan:
		return nil, err
	}
}
