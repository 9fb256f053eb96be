package main

import "stackaudit/cmd"

// execCmd is swappable so main can be exercised in tests.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
