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
	"fmt"
	"sort"
	"strings"
)

// metadataDir is the fixed metadata directory inside the archive.
const metadataDir = "EGG-INFO"

// Entry point hook dispatched to by the eggsecutable prefix and declared
// in the setuptools.installation section.
const eggsecutableHook = "simflow.main.component:eggsecutable"

const pkgInfoFormat = `Metadata-Version: 1.0
Name: %s
Version: %s
Summary: %s
Home-page: UNKNOWN
Author: UNKNOWN
Author-email: UNKNOWN
License: UNKNOWN
Description: UNKNOWN
Platform: UNKNOWN
`

const entryPointsFormat = `[simflow.components]
%[1]s = %[1]s.%[2]s:load

[simflow.top]
top = %[2]s:load

[setuptools.installation]
eggsecutable = ` + eggsecutableHook + `

`

// infoFile is one metadata blob with its fixed destination filename
// inside the metadata directory.
type infoFile struct {
	name    string
	content string
}

// buildMetadata synthesizes the seven fixed metadata blobs for the
// request. moduleSources is the tree-walk sources listing; the self
// references of the metadata files themselves are appended and the
// combined listing is sorted before serialization as SOURCES.txt.
func buildMetadata(req Request, moduleSources []string) []infoFile {
	pkgInfo := fmt.Sprintf(pkgInfoFormat,
		strings.ReplaceAll(req.Name, "_", "-"), req.Version, strings.TrimSpace(req.Summary))

	dependencyLinks := "\n"

	entryPoints := fmt.Sprintf(entryPointsFormat, req.Name, req.Loader)

	notZipSafe := "\n"

	dists := make([]Distribution, len(req.Requires))
	copy(dists, req.Requires)
	sort.Slice(dists, func(i, j int) bool { return dists[i].Project < dists[j].Project })
	var requirements strings.Builder
	for _, dist := range dists {
		fmt.Fprintf(&requirements, "%s == %s\n", dist.Project, dist.Version)
	}

	topLevel := req.Name + "\n"

	files := []infoFile{
		{name: "PKG-INFO", content: pkgInfo},
		{name: "dependency_links.txt", content: dependencyLinks},
		{name: "entry_points.txt", content: entryPoints},
		{name: "not-zip-safe", content: notZipSafe},
		{name: "requires.txt", content: requirements.String()},
		{name: "top_level.txt", content: topLevel},
	}

	sources := make([]string, 0, len(moduleSources)+len(files)+1)
	sources = append(sources, moduleSources...)
	for _, f := range files {
		sources = append(sources, req.Name+".egg-info/"+f.name+"\n")
	}
	sources = append(sources, req.Name+".egg-info/SOURCES.txt\n")
	sort.Strings(sources)

	return append(files, infoFile{name: "SOURCES.txt", content: strings.Join(sources, "")})
}
