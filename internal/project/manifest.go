// Package project loads the optional flare.toml manifest that supplies
// defaults for the CLI.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up in the working directory.
const ManifestName = "flare.toml"

// Manifest carries CLI defaults. Flags override manifest values.
type Manifest struct {
	Run  RunSection  `toml:"run"`
	Repl ReplSection `toml:"repl"`
}

// RunSection configures script execution.
type RunSection struct {
	Trace          bool `toml:"trace"`
	Cache          bool `toml:"cache"`
	MaxDiagnostics int  `toml:"max-diagnostics"`
}

// ReplSection configures the interactive prompt.
type ReplSection struct {
	Prompt string `toml:"prompt"`
}

// Default returns the manifest used when no flare.toml exists.
func Default() Manifest {
	return Manifest{
		Run:  RunSection{Trace: false, Cache: true, MaxDiagnostics: 100},
		Repl: ReplSection{Prompt: "> "},
	}
}

// Load reads dir/flare.toml, falling back to defaults when the file is
// missing. A malformed manifest is an error.
func Load(dir string) (Manifest, error) {
	m := Default()
	path := filepath.Join(dir, ManifestName)
	if _, err := toml.DecodeFile(path, &m); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Manifest{}, err
	}
	if m.Run.MaxDiagnostics <= 0 {
		m.Run.MaxDiagnostics = 100
	}
	if m.Repl.Prompt == "" {
		m.Repl.Prompt = "> "
	}
	return m, nil
}
