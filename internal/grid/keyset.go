package grid

import "math/bits"

// KeySet is a set of key letters ('a'..'z') stored as a bitmap.
// The zero value is the empty set.
type KeySet uint32

// Has reports whether k contains key.
func (k KeySet) Has(key byte) bool {
	if !IsKey(key) {
		return false
	}
	return k>>(key-'a')&1 == 1
}

// Add returns k with key added.
func (k KeySet) Add(key byte) KeySet {
	if !IsKey(key) {
		return k
	}
	return k | 1<<(key-'a')
}

// Remove returns k without key.
func (k KeySet) Remove(key byte) KeySet {
	if !IsKey(key) {
		return k
	}
	return k &^ (1 << (key - 'a'))
}

// ContainsAll reports whether other is a subset of k.
func (k KeySet) ContainsAll(other KeySet) bool {
	return k&other == other
}

// Len returns the number of keys in k.
func (k KeySet) Len() int {
	return bits.OnesCount32(uint32(k))
}

// Letters returns the keys in alphabetical order.
func (k KeySet) Letters() []byte {
	out := make([]byte, 0, k.Len())
	for i := byte(0); i < 26; i++ {
		if k>>i&1 == 1 {
			out = append(out, 'a'+i)
		}
	}
	return out
}

// String returns the sorted letters, e.g. "abf". The order does not depend on
// the order keys were added, so it is a canonical form of the set.
func (k KeySet) String() string {
	return string(k.Letters())
}

// KeySetOf builds a KeySet from letters; non-key bytes are ignored.
func KeySetOf(letters ...byte) KeySet {
	var k KeySet
	for _, l := range letters {
		k = k.Add(l)
	}
	return k
}
