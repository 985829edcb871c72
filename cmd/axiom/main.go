// Command axiom is the entrypoint for the Axiom language toolchain's
// run/chk/fmt/pkg/conf subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/axiom-lang/axiom/internal/cli/commands"
)

// runWorker executes the cobra root command on a dedicated goroutine
// and reports back over a one-slot buffered channel, mirroring
// original_source's axiom/src/main.rs worker-thread pattern: that
// implementation spawns an OS thread with a fixed 64 MiB stack via
// std::thread::Builder to survive deep recursion, then wraps the call
// in catch_unwind so a panic inside the interpreter is reported as an
// error instead of crashing the process. Go goroutines grow their
// stack on demand, so the fixed-size allocation has no Go analogue;
// only the panic-isolation half of the pattern is preserved here.
func runWorker() error {
	type result struct {
		err   error
		panic any
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{panic: r}
				return
			}
		}()
		done <- result{err: commands.Execute()}
	}()

	res := <-done
	if res.panic != nil {
		return fmt.Errorf("internal error (panic): %v", res.panic)
	}
	return res.err
}

func main() {
	if err := runWorker(); err != nil {
		fmt.Fprintf(os.Stderr, "axiom crashed: %v\n", err)
		os.Exit(1)
	}
}
