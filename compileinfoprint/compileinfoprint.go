// compileinfoprint is imported by the report binaries for the side effect of
// printing the build identity to os.Stderr before anything else runs.
package compileinfoprint

import "github.com/carbocation/mirreport/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
