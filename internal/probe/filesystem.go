package probe

import (
	"os"
)

// runFilesystem checks that a path exists. Absence is an expected,
// representable state and classifies as Failure, not Error. For directories
// the probe optionally records a shallow entry count; it never recurses.
func runFilesystem(def CheckDefinition) Outcome {
	detail := map[string]any{"path": def.Target.Path}

	info, err := os.Stat(def.Target.Path)
	if os.IsNotExist(err) {
		return failure("missing", detail)
	}
	if err != nil {
		return errOutcome("stat failed", err)
	}

	if def.WantDir && !info.IsDir() {
		return failure("not a directory", detail)
	}

	if def.CountItems && info.IsDir() {
		entries, err := os.ReadDir(def.Target.Path)
		if err != nil {
			return errOutcome("read dir failed", err)
		}
		detail["entry_count"] = len(entries)
	}
	return success("exists", detail)
}
