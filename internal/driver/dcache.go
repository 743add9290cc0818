package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"flare/internal/bytecode"
	"flare/internal/value"
)

// Current schema version - increment when ChunkPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит скомпилированные chunks по хешу исходника на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// ChunkPayload is the serialized form of a compiled chunk. Constants are
// stored tagged; string constants are re-interned on load.
type ChunkPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Code  []byte
	Lines []uint32

	Consts []ConstPayload
}

// ConstPayload is one tagged constant-pool entry.
type ConstPayload struct {
	Kind uint8 // value.Kind
	Bool bool
	Num  float64
	Str  string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt returns a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "chunks".
	return filepath.Join(c.dir, "chunks", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key [32]byte, payload *ChunkPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key [32]byte, out *ChunkPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// ChunkToPayload converts a compiled chunk into its serializable form.
func ChunkToPayload(chunk *bytecode.Chunk) (*ChunkPayload, error) {
	payload := &ChunkPayload{
		Schema: diskCacheSchemaVersion,
		Code:   chunk.Code,
		Lines:  chunk.Lines,
		Consts: make([]ConstPayload, 0, chunk.Constants.Count()),
	}
	for _, v := range chunk.Constants.Values() {
		cp := ConstPayload{Kind: uint8(v.Kind)}
		switch v.Kind {
		case value.KNil:
		case value.KBool:
			cp.Bool = v.Bool
		case value.KNumber:
			cp.Num = v.Num
		case value.KObj:
			if !v.IsString() {
				return nil, fmt.Errorf("unsupported constant object kind %d", v.Obj.Kind)
			}
			cp.Str = v.AsString().Str
		}
		payload.Consts = append(payload.Consts, cp)
	}
	return payload, nil
}

// PayloadToChunk rebuilds a chunk, re-interning string constants through the
// VM's registry so pointer-equality semantics hold.
func PayloadToChunk(payload *ChunkPayload, objects *value.Registry) (*bytecode.Chunk, error) {
	if payload.Schema != diskCacheSchemaVersion {
		return nil, fmt.Errorf("chunk cache schema mismatch: %d", payload.Schema)
	}
	if len(payload.Code) != len(payload.Lines) {
		return nil, errors.New("chunk cache payload: code and lines length mismatch")
	}

	chunk := bytecode.NewChunk()
	for i, b := range payload.Code {
		chunk.Write(b, payload.Lines[i])
	}
	for _, cp := range payload.Consts {
		var v value.Value
		switch value.Kind(cp.Kind) {
		case value.KNil:
			v = value.Nil()
		case value.KBool:
			v = value.Boolean(cp.Bool)
		case value.KNumber:
			v = value.Number(cp.Num)
		case value.KObj:
			v = objects.CopyString(cp.Str)
		default:
			return nil, fmt.Errorf("chunk cache payload: unknown constant kind %d", cp.Kind)
		}
		if _, err := chunk.AddConstant(v); err != nil {
			return nil, err
		}
	}
	return chunk, nil
}
