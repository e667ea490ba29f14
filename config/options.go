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

// Package config holds the configuration options for egg packaging.
package config

import (
	"fmt"
	"os"
	"time"
)

// Options contains configuration settings for the egg writer.
type Options struct {
	// DestDir is the path to the directory where eggs will be written.
	DestDir string `json:"destDir"`

	// Compress enables deflate compression for archive entries. When
	// disabled, entries are stored uncompressed.
	Compress bool `json:"compress"`

	// PythonVersion is the 'major.minor' version of the Python runtime
	// the packaging environment targets. It determines the egg filename
	// suffix and the interpreter invoked by the eggsecutable prefix.
	PythonVersion string `json:"pythonVersion"`

	// EggDigestAlgo is the hashing algorithm used to calculate the digest
	// of written eggs.
	EggDigestAlgo string `json:"eggDigestAlgo"`

	// EggRetentionTTL is the duration after which superseded eggs are
	// garbage collected.
	EggRetentionTTL time.Duration `json:"eggRetentionTTL"`

	// EggRetentionRecords is the maximum number of eggs per component to
	// be kept in the destination directory after a garbage collection.
	EggRetentionRecords int `json:"eggRetentionRecords"`
}

// Validate checks that the destination directory exists and is a
// directory.
func (o *Options) Validate() error {
	if f, err := os.Stat(o.DestDir); os.IsNotExist(err) || (err == nil && !f.IsDir()) {
		return fmt.Errorf("invalid destination dir path: %s", o.DestDir)
	} else if err != nil {
		return fmt.Errorf("failed to inspect destination dir %s: %w", o.DestDir, err)
	}
	return nil
}
