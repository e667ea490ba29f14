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

package config

import (
	"os"
	"time"

	"github.com/spf13/pflag"
)

const (
	flagDestDir    = "dest-dir"
	envDestDir     = "EGG_DEST_DIR"
	defaultDestDir = "."

	flagCompress = "compress"

	flagPythonVersion    = "python-version"
	envPythonVersion     = "EGG_PYTHON_VERSION"
	defaultPythonVersion = "3.11"

	flagEggDigestAlgo    = "egg-digest-algo"
	defaultEggDigestAlgo = "sha256"

	flagEggRetentionTTL    = "egg-retention-ttl"
	defaultEggRetentionTTL = time.Hour

	flagEggRetentionRecords    = "egg-retention-records"
	defaultEggRetentionRecords = 2
)

// BindFlags will parse the given pflag.FlagSet for egg writer flags and
// set the Options accordingly.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DestDir, flagDestDir,
		envOrDefault(envDestDir, defaultDestDir),
		"The path to the directory where eggs will be written.")

	fs.BoolVar(&o.Compress, flagCompress, true,
		"Deflate-compress archive entries instead of storing them.")

	fs.StringVar(&o.PythonVersion, flagPythonVersion,
		envOrDefault(envPythonVersion, defaultPythonVersion),
		"The 'major.minor' Python runtime version the packaging environment targets.")

	fs.StringVar(&o.EggDigestAlgo, flagEggDigestAlgo,
		defaultEggDigestAlgo,
		"The hashing algorithm used to calculate the digest of written eggs.")

	fs.DurationVar(&o.EggRetentionTTL, flagEggRetentionTTL,
		defaultEggRetentionTTL,
		"The duration after which superseded eggs are garbage collected.")

	fs.IntVar(&o.EggRetentionRecords, flagEggRetentionRecords,
		defaultEggRetentionRecords,
		"The maximum number of eggs per component kept after a garbage collection.")
}

// envOrDefault returns the value of the environment variable named by the
// key. If the variable is empty or not present, it returns the
// defaultValue instead.
func envOrDefault(envName, defaultValue string) string {
	ret := os.Getenv(envName)
	if ret != "" {
		return ret
	}

	return defaultValue
}
