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

// Package writer serializes a component into a Python egg: a zip archive
// with a fixed EGG-INFO metadata layout plus the component's source files.
//
// It provides:
//
// Archive assembly:
//   - Deterministic egg filename derivation from (name, version, runtime)
//   - Manifest collection over the working tree, descending only into
//     directories carrying the __init__.py package marker, with a second
//     pass over a symlinked component root
//   - The seven fixed EGG-INFO metadata entries, including a sorted
//     SOURCES.txt listing
//   - An eggsecutable shell prefix, making the written file both a valid
//     POSIX shell script and a valid zip archive
//
// Lifecycle management:
//   - Content digest computation while streaming, and verification of
//     written eggs
//   - Destination file locking for callers that run concurrent writers
//   - Garbage collection of superseded eggs based on TTL and record count
//
// A delegated path shells out to setuptools ('python setup.py bdist_egg')
// for callers that need byte-exact setuptools output.
package writer
