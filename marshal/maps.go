package marshal

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/teamworkguy2/datatransfer/stream"
)

// EntryName is the block name of one map entry.
const EntryName = "entry"

// WriteMap writes m as block, one EntryName block per key holding the key
// entry (written by kf) and the value entry (written by vf). Keys are
// written in ascending order so equal maps produce equal documents.
func WriteMap[K cmp.Ordered, V any](w stream.BlockWriter, block string, m map[K]V, kf Factory[K], vf Factory[V]) error {
	if err := w.WriteStartBlock(block); err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if err := w.WriteStartBlock(EntryName); err != nil {
			return err
		}
		if err := kf.Encode(w, k); err != nil {
			return fmt.Errorf("%s key %v: %w", block, k, err)
		}
		if err := vf.Encode(w, m[k]); err != nil {
			return fmt.Errorf("%s[%v]: %w", block, k, err)
		}
		if err := w.WriteEndBlock(); err != nil {
			return err
		}
	}
	return w.WriteEndBlock()
}

// ReadMap reads a block written by WriteMap.
func ReadMap[K comparable, V any](r stream.BlockReader, block string, kf Factory[K], vf Factory[V]) (map[K]V, error) {
	if err := r.ReadStartBlock(block); err != nil {
		return nil, err
	}
	res := map[K]V{}
	for {
		e, err := r.PeekNext()
		if err != nil {
			return nil, err
		}
		if e.IsEnd() {
			if err := r.ReadEndBlock(); err != nil {
				return nil, err
			}
			return res, nil
		}
		if err := r.ReadStartBlock(EntryName); err != nil {
			return nil, err
		}
		k, err := kf.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%s key: %w", block, err)
		}
		if _, dup := res[k]; dup {
			return nil, fmt.Errorf("%s: %w %v", block, ErrDuplicateKey, k)
		}
		v, err := vf.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%s[%v]: %w", block, k, err)
		}
		if err := r.ReadEndBlock(); err != nil {
			return nil, err
		}
		res[k] = v
	}
}

// WriteStringMap writes the common map[string]string case with "key" and
// "value" leaves.
func WriteStringMap(w stream.BlockWriter, block string, m map[string]string) error {
	return WriteMap(w, block, m, StringLeaf("key"), StringLeaf("value"))
}

func ReadStringMap(r stream.BlockReader, block string) (map[string]string, error) {
	return ReadMap(r, block, StringLeaf("key"), StringLeaf("value"))
}
