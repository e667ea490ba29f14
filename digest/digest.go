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

// Package digest provides digest algorithm selection and file digest
// computation for egg archives.
package digest

import (
	// go-digest requires the hash implementations to be linked in for
	// the corresponding algorithms to be available.
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
)

// Canonical is the default algorithm used to calculate the digest of
// egg archives.
const Canonical = digest.SHA256

// AlgorithmForName returns the digest.Algorithm for the given name, or an
// error if the algorithm is not registered and available.
func AlgorithmForName(name string) (digest.Algorithm, error) {
	a := digest.Algorithm(name)
	if !a.Available() {
		return "", fmt.Errorf("unsupported digest algorithm %q: %w", name, digest.ErrDigestUnsupported)
	}
	return a, nil
}

// SumFile calculates the digest of the file at path using the given
// algorithm.
func SumFile(algo digest.Algorithm, path string) (digest.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digester := algo.Digester()
	if _, err := io.Copy(digester.Hash(), f); err != nil {
		return "", err
	}
	return digester.Digest(), nil
}
