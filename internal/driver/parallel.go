package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"flare/internal/diag"
	"flare/internal/source"
	"flare/internal/vm"
)

// CheckStatus is the per-file outcome of a parallel check.
type CheckStatus uint8

const (
	CheckQueued CheckStatus = iota
	CheckCompiling
	CheckOK
	CheckFailed
)

// CheckEvent notifies observers (the check TUI) about per-file progress.
type CheckEvent struct {
	Path   string
	Status CheckStatus
}

// CheckResult содержит результат компиляции одного файла.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	Bag     *diag.Bag
	OK      bool
	Err     error // host error: файл не читается
}

// ListScriptFiles возвращает отсортированный список всех *.fl файлов в директории.
func ListScriptFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".fl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckFiles compiles every file concurrently (compile-only, no execution).
// Each worker gets its own FileSet, registry, and bag, so no state is
// shared. Results come back in input order. events may be nil.
func CheckFiles(ctx context.Context, paths []string, jobs, maxDiagnostics int, events chan<- CheckEvent) ([]CheckResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]CheckResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			notify(events, CheckEvent{Path: path, Status: CheckCompiling})

			fileSet := source.NewFileSet()
			fileID, err := fileSet.Load(path)
			if err != nil {
				results[i] = CheckResult{Path: path, Err: err}
				notify(events, CheckEvent{Path: path, Status: CheckFailed})
				return nil
			}

			_, res := CompileOnly(fileSet, fileID, maxDiagnostics)
			ok := res.Result == vm.ResultOK
			results[i] = CheckResult{
				Path:    path,
				FileSet: fileSet,
				Bag:     res.Bag,
				OK:      ok,
			}
			status := CheckOK
			if !ok {
				status = CheckFailed
			}
			notify(events, CheckEvent{Path: path, Status: status})
			return nil
		})
	}

	err := g.Wait()
	if events != nil {
		close(events)
	}
	return results, err
}

func notify(events chan<- CheckEvent, ev CheckEvent) {
	if events != nil {
		events <- ev
	}
}
