package runtime

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// MapEntry is one key/value association.
type MapEntry struct {
	Key   Value
	Value Value
}

// MapValue maps values to values. Iteration follows the ascending Compare
// order of the keys. Every update returns a new map; the receiver is left
// untouched.
type MapValue struct {
	tree *treemap.Map
}

func (v MapValue) Kind() Kind { return KindMap }

func compareKeys(a, b interface{}) int {
	return int(Compare(a.(Value), b.(Value)))
}

// NewMap builds a map from entries. Later duplicates win.
func NewMap(entries ...MapEntry) MapValue {
	tree := treemap.NewWith(compareKeys)
	for _, e := range entries {
		tree.Put(normalize(e.Key), normalize(e.Value))
	}
	return MapValue{tree: tree}
}

// Len returns the number of entries.
func (v MapValue) Len() int {
	if v.tree == nil {
		return 0
	}
	return v.tree.Size()
}

// Get looks up key.
func (v MapValue) Get(key Value) (Value, bool) {
	if v.tree == nil {
		return nil, false
	}
	found, ok := v.tree.Get(normalize(key))
	if !ok {
		return nil, false
	}
	return found.(Value), true
}

// With returns a copy of the map with key bound to val.
func (v MapValue) With(key, val Value) MapValue {
	tree := v.clone()
	tree.Put(normalize(key), normalize(val))
	return MapValue{tree: tree}
}

// Without returns a copy of the map lacking key.
func (v MapValue) Without(key Value) MapValue {
	tree := v.clone()
	tree.Remove(normalize(key))
	return MapValue{tree: tree}
}

// Entries returns the associations in iteration order.
func (v MapValue) Entries() []MapEntry {
	if v.tree == nil {
		return nil
	}
	out := make([]MapEntry, 0, v.tree.Size())
	it := v.tree.Iterator()
	for it.Next() {
		out = append(out, MapEntry{Key: it.Key().(Value), Value: it.Value().(Value)})
	}
	return out
}

// Keys returns the keys in iteration order.
func (v MapValue) Keys() []Value {
	if v.tree == nil {
		return nil
	}
	out := make([]Value, 0, v.tree.Size())
	for _, k := range v.tree.Keys() {
		out = append(out, k.(Value))
	}
	return out
}

func (v MapValue) clone() *treemap.Map {
	tree := treemap.NewWith(compareKeys)
	if v.tree == nil {
		return tree
	}
	it := v.tree.Iterator()
	for it.Next() {
		tree.Put(it.Key(), it.Value())
	}
	return tree
}

func normalize(v Value) Value {
	if v == nil {
		return Null
	}
	return v
}
