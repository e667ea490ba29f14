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

import "fmt"

// The eggsecutable prefix. Written as the first bytes of the destination
// file, ahead of all zip structural data, so the egg can be run directly
// from a shell: the script re-executes the Python runtime with the egg's
// own path inserted at the head of the module search path and dispatches
// to the eggsecutable hook. Zip readers locate the central directory from
// the end of the file, so the two interpretations never conflict.
const shellPrefixFormat = `#!/bin/sh
if [ ` + "`basename $0`" + ` = "%[1]s" ]
then exec python%[2]s -c "import sys, os; sys.path.insert(0, os.path.abspath('$0')); from simflow.main.component import eggsecutable; sys.exit(eggsecutable())" "$@"
else
  echo $0 is not the correct name for this egg file.
  echo Please rename it back to %[1]s and try again.
  exec false
fi
`

// shellPrefix returns the eggsecutable shell text for the given egg
// filename and runtime. The script refuses to run under any other name,
// since the derived filename is what install tooling expects.
func shellPrefix(eggName string, rt RuntimeVersion) string {
	return fmt.Sprintf(shellPrefixFormat, eggName, rt)
}
