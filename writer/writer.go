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
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/fluxcd/pkg/lockedfile"
	"github.com/go-logr/logr"
	"github.com/opencontainers/go-digest"

	"github.com/simflow/eggsaver/config"
	intdigest "github.com/simflow/eggsaver/digest"
	"github.com/simflow/eggsaver/logger"
)

// zipSizeLimit is the standard (non-ZIP64) zip format size limit. The
// value matches the legacy tooling threshold of 2^31-1 bytes.
const zipSizeLimit = 1<<31 - 1

// Writer assembles eggs in a destination directory. A Writer is safe for
// use by concurrent invocations targeting different egg filenames; two
// writes targeting the same filename must be serialized, see Lock.
type Writer struct {
	// DestDir is the directory eggs are written to.
	DestDir string

	// Compress selects deflate compression for archive entries; when
	// false, entries are stored uncompressed.
	Compress bool

	// Runtime is the Python runtime descriptor of the packaging
	// environment.
	Runtime RuntimeVersion

	// DigestAlgo is the algorithm used to calculate egg digests.
	DigestAlgo digest.Algorithm

	// EggRetentionTTL is the duration of time that superseded eggs will
	// be kept before being garbage collected.
	EggRetentionTTL time.Duration

	// EggRetentionRecords is the maximum number of eggs per component to
	// be kept after a garbage collection.
	EggRetentionRecords int
}

// New creates an egg writer using the provided configuration options.
func New(opts *config.Options) (*Writer, error) {
	if opts == nil {
		return nil, fmt.Errorf("options cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rt, err := ParseRuntimeVersion(opts.PythonVersion)
	if err != nil {
		return nil, err
	}
	algo, err := intdigest.AlgorithmForName(opts.EggDigestAlgo)
	if err != nil {
		return nil, err
	}
	return &Writer{
		DestDir:             opts.DestDir,
		Compress:            opts.Compress,
		Runtime:             rt,
		DigestAlgo:          algo,
		EggRetentionTTL:     opts.EggRetentionTTL,
		EggRetentionRecords: opts.EggRetentionRecords,
	}, nil
}

// writeCounter is an implementation of io.Writer
// that only records the number of bytes written.
type writeCounter struct {
	written int64
}

// Write implements the io.Writer interface.
func (wc *writeCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.written += int64(n)
	return n, nil
}

// needsZip64 reports whether an archive of the given uncompressed byte
// total exceeds the standard zip size limit and requires ZIP64
// extensions.
func needsZip64(total int64) bool {
	return total > zipSizeLimit
}

// Write assembles the egg described by req in the destination directory
// and returns its derived filename. The destination file is created
// fresh; the write fails if it already exists. Log lines are emitted at
// debug level for every entry added, and a warning is emitted when the
// final size exceeds the standard zip limit. On an I/O failure mid-write
// the error propagates and no partial-archive cleanup is performed.
func (w *Writer) Write(req Request, log logr.Logger) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}

	eggName := Filename(req.Name, req.Version, w.Runtime)
	eggPath := w.localPath(eggName)
	if eggPath == "" {
		return "", fmt.Errorf("failed to resolve egg path for %q in %q", eggName, w.DestDir)
	}

	// Collect everything and compute the uncompressed total before the
	// destination is touched, so a missing source leaves no file behind.
	man, err := collect(req.Name, req.SrcFiles)
	if err != nil {
		return "", err
	}
	info := buildMetadata(req, man.sources)
	prefix := shellPrefix(eggName, w.Runtime)

	total := int64(len(prefix)) + man.total
	for _, f := range info {
		total += int64(len(f.content))
	}
	if needsZip64(total) {
		log.Info("uncompressed size exceeds standard zip limit, ZIP64 extensions apply",
			"path", eggPath, "bytes", total)
	}

	log.V(logger.DebugLevel).Info("creating egg", "path", eggPath)
	f, err := os.OpenFile(eggPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create egg file: %w", err)
	}
	defer func() {
		if f != nil {
			f.Close()
		}
	}()

	d := w.DigestAlgo.Digester()
	sz := &writeCounter{}
	mw := io.MultiWriter(f, d.Hash(), sz)

	if _, err := io.WriteString(mw, prefix); err != nil {
		return "", fmt.Errorf("failed to write eggsecutable prefix: %w", err)
	}

	zw := zip.NewWriter(mw)
	zw.SetOffset(int64(len(prefix)))

	method := zip.Store
	if w.Compress {
		method = zip.Deflate
	}
	modified := time.Now()

	for _, blob := range info {
		name := path.Join(metadataDir, blob.name)
		log.V(logger.DebugLevel).Info("adding metadata entry", "path", name)
		if err := writeZipString(zw, name, blob.content, method, modified); err != nil {
			zw.Close()
			return "", err
		}
	}

	for _, e := range man.sorted() {
		log.V(logger.DebugLevel).Info("adding file", "path", e.path, "size", e.size)
		if err := writeZipFile(zw, e.path, method, modified); err != nil {
			zw.Close()
			return "", err
		}
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize egg archive: %w", err)
	}
	if err := f.Close(); err != nil {
		f = nil
		return "", fmt.Errorf("failed to close egg file: %w", err)
	}
	f = nil

	if sz.written > zipSizeLimit {
		log.Info("egg requires ZIP64 support to unzip", "path", eggPath, "bytes", sz.written)
	}
	log.V(logger.DebugLevel).Info("egg written",
		"path", eggPath, "digest", d.Digest().String(), "bytes", sz.written)
	return eggName, nil
}

// writeZipString adds one text entry to the archive.
func writeZipString(zw *zip.Writer, name, content string, method uint16, modified time.Time) error {
	hdr := &zip.FileHeader{Name: name, Method: method, Modified: modified}
	hdr.SetMode(0o644)
	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to add entry %q: %w", name, err)
	}
	if _, err := io.WriteString(dst, content); err != nil {
		return fmt.Errorf("failed to write entry %q: %w", name, err)
	}
	return nil
}

// writeZipFile streams one on-disk file into the archive.
func writeZipFile(zw *zip.Writer, path string, method uint16, modified time.Time) error {
	hdr := &zip.FileHeader{Name: filepath.ToSlash(path), Method: method, Modified: modified}
	hdr.SetMode(0o644)
	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to add entry %q: %w", path, err)
	}
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		src.Close()
		return fmt.Errorf("failed to write entry %q: %w", path, err)
	}
	return src.Close()
}

// localPath returns the secure path of the given egg filename relative to
// the destination directory.
func (w *Writer) localPath(eggName string) string {
	if eggName == "" {
		return ""
	}
	p, err := securejoin.SecureJoin(w.DestDir, eggName)
	if err != nil {
		return ""
	}
	return p
}

// Lock creates a file lock for the given egg filename. Callers running
// concurrent writers against the same destination use it to serialize
// their writes.
func (w *Writer) Lock(eggName string) (unlock func(), err error) {
	lockFile := w.localPath(eggName) + ".lock"
	mutex := lockedfile.MutexAt(lockFile)
	return mutex.Lock()
}

// Digest calculates the digest of the given egg file in the destination
// directory.
func (w *Writer) Digest(eggName string) (digest.Digest, error) {
	return intdigest.SumFile(w.DigestAlgo, w.localPath(eggName))
}

// Verify checks the given egg file against the provided digest. It
// returns an error if the digests don't match, or if it can't be
// verified.
func (w *Writer) Verify(eggName string, dig digest.Digest) error {
	if err := dig.Validate(); err != nil {
		return fmt.Errorf("invalid egg digest '%s': %w", dig, err)
	}

	f, err := os.Open(w.localPath(eggName))
	if err != nil {
		return err
	}
	defer f.Close()

	verifier := dig.Verifier()
	if _, err = io.Copy(verifier, f); err != nil {
		return err
	}
	if !verifier.Verified() {
		return fmt.Errorf("computed digest doesn't match '%s'", dig)
	}
	return nil
}
