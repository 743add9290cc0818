package vm

import (
	"io"
	"os"
)

// Runtime provides the interface between the VM and the outside world.
type Runtime struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewDefaultRuntime creates a runtime wired to the process streams.
func NewDefaultRuntime() *Runtime {
	return &Runtime{Stdout: os.Stdout, Stderr: os.Stderr}
}

// NewTestRuntime creates a runtime writing to the given buffers.
func NewTestRuntime(stdout, stderr io.Writer) *Runtime {
	return &Runtime{Stdout: stdout, Stderr: stderr}
}
