// Command grafema is a thin cobra wrapper over the core pipeline
// (config -> store -> orchestrator -> diagnostics reporter), the
// direct analogue of the teacher's demo/cmd/main.go entrypoint. It is
// deliberately outside the tested core contract (SPEC_FULL.md §6).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorError("error:"), err)
		os.Exit(1)
	}
}
