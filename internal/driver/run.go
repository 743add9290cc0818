package driver

import (
	"flare/internal/compiler"
	"flare/internal/diag"
	"flare/internal/source"
	"flare/internal/vm"
)

// RunOptions configures RunFile.
type RunOptions struct {
	MaxDiagnostics int
	Cache          *DiskCache // nil disables the chunk cache
}

// RunFile loads, compiles, and executes one script file. When a cache is
// supplied, a chunk keyed by the source hash is reused or stored; cached
// string constants are re-interned into the VM's registry on load. A non-nil
// error is a host error (unreadable file); compile and runtime failures come
// back in the InterpretResult.
func RunFile(machine *vm.VM, path string, opts RunOptions) (InterpretResult, *source.FileSet, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return InterpretResult{}, nil, err
	}
	file := fs.Get(fileID)

	if opts.Cache != nil {
		var payload ChunkPayload
		if ok, err := opts.Cache.Get(file.Hash, &payload); err == nil && ok {
			if chunk, err := PayloadToChunk(&payload, machine.Objects()); err == nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				return InterpretResult{Result: machine.Run(chunk), Bag: bag}, fs, nil
			}
		}
		// промах или битый payload — компилируем заново
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	chunk, ok := compiler.Compile(fs, file, machine.Objects(), diag.BagReporter{Bag: bag})
	if !ok {
		bag.Sort()
		return InterpretResult{Result: vm.ResultCompileError, Bag: bag}, fs, nil
	}

	if opts.Cache != nil {
		if payload, err := ChunkToPayload(chunk); err == nil {
			// ошибка записи кэша не фатальна
			_ = opts.Cache.Put(file.Hash, payload)
		}
	}

	return InterpretResult{Result: machine.Run(chunk), Bag: bag}, fs, nil
}
