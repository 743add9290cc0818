package value

// Table is an open-addressing hash map from interned strings to values, with
// linear probing and tombstones. It backs both the intern table and global
// variable storage.
//
// Entry states: empty (Key nil, Value nil), tombstone (Key nil, Value
// boolean true), live (Key set). count covers live entries plus tombstones;
// a rehash discards tombstones and recomputes it.
type Table struct {
	count   int
	entries []Entry
}

// Entry is a single table slot.
type Entry struct {
	Key   *ObjString
	Value Value
}

const tableMaxLoad = 0.75

// Count returns live entries plus tombstones.
func (t *Table) Count() int { return t.count }

// Cap returns the current slot capacity.
func (t *Table) Cap() int { return len(t.entries) }

// Reset drops all entries.
func (t *Table) Reset() {
	t.count = 0
	t.entries = nil
}

// findEntry locates the slot for key: the live entry holding it, or the slot
// an insert should use. On the first tombstone remember it; an empty slot
// ends the probe. Queries compare keys by pointer — interning makes that
// sufficient. The load-factor bound guarantees a vacancy, so the walk
// terminates.
func findEntry(entries []Entry, key *ObjString) *Entry {
	index := key.Hash % uint32(len(entries))
	var tombstone *Entry
	for {
		entry := &entries[index]
		if entry.Key == nil {
			if entry.Value.IsNil() {
				// настоящая пустая ячейка
				if tombstone != nil {
					return tombstone
				}
				return entry
			}
			// tombstone — запоминаем первый
			if tombstone == nil {
				tombstone = entry
			}
		} else if entry.Key == key {
			return entry
		}
		index = (index + 1) % uint32(len(entries))
	}
}

// Get returns the value bound to key.
func (t *Table) Get(key *ObjString) (Value, bool) {
	if t.count == 0 {
		return Nil(), false
	}
	entry := findEntry(t.entries, key)
	if entry.Key == nil {
		return Nil(), false
	}
	return entry.Value, true
}

// Set binds key to v and reports whether the key is new. Growth triggers
// before the insert once count+1 would exceed 75% occupancy. A reused
// tombstone does not increment count: it already occupies a slot.
func (t *Table) Set(key *ObjString, v Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*tableMaxLoad {
		t.adjustCapacity(growCapacity(len(t.entries)))
	}

	entry := findEntry(t.entries, key)
	isNewKey := entry.Key == nil
	if isNewKey && entry.Value.IsNil() {
		t.count++
	}
	entry.Key = key
	entry.Value = v
	return isNewKey
}

// Delete unbinds key, leaving a tombstone so later probes keep walking.
// count stays put until the next rehash.
func (t *Table) Delete(key *ObjString) bool {
	if t.count == 0 {
		return false
	}
	entry := findEntry(t.entries, key)
	if entry.Key == nil {
		return false
	}
	entry.Key = nil
	entry.Value = Boolean(true)
	return true
}

// AddAll copies every live entry from src into t.
func (t *Table) AddAll(src *Table) {
	for i := range src.entries {
		entry := &src.entries[i]
		if entry.Key != nil {
			t.Set(entry.Key, entry.Value)
		}
	}
}

// FindString looks a string up by content: byte equality guarded by hash and
// length. This is the only path that compares bytes; every other lookup uses
// pointer identity. Used by interning before a new ObjString is created.
func (t *Table) FindString(s string, hash uint32) *ObjString {
	if t.count == 0 {
		return nil
	}
	index := hash % uint32(len(t.entries))
	for {
		entry := &t.entries[index]
		if entry.Key == nil {
			// пустая (не tombstone) — строки нет
			if entry.Value.IsNil() {
				return nil
			}
		} else if entry.Key.Hash == hash && entry.Key.Str == s {
			return entry.Key
		}
		index = (index + 1) % uint32(len(t.entries))
	}
}

// adjustCapacity rehashes live entries into a larger slot array. Tombstones
// are dropped and count recomputed.
func (t *Table) adjustCapacity(capacity int) {
	entries := make([]Entry, capacity)

	count := 0
	for i := range t.entries {
		entry := &t.entries[i]
		if entry.Key == nil {
			continue
		}
		dest := findEntry(entries, entry.Key)
		dest.Key = entry.Key
		dest.Value = entry.Value
		count++
	}

	t.entries = entries
	t.count = count
}
