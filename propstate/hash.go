package propstate

import "fmt"

// FNV-1a constants.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func fnvString(s string) uint64 {
	h := uint64(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}

func fnvUint(h, n uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= n & 0xff
		h *= fnvPrime
		n >>= 8
	}
	return h
}

// valueHash hashes a domain value. Keyed on the value's content, never on
// its storage, so equal values hash equally regardless of which StateMap
// strategy holds them.
func valueHash(v Value) uint64 {
	switch t := v.(type) {
	case bool:
		if t {
			return 0x9e3779b97f4a7c15
		}
		return 0x85ebca6b2c2f3d29
	case int:
		return fnvUint(fnvOffset, uint64(t))
	case EnumValue:
		return fnvUint(fnvString(t.enum.name), uint64(t.ordinal))
	default:
		// Domains admit only the three kinds above; anything else is
		// hashed by its printed form so Equal still discriminates.
		return fnvString(fmt.Sprint(v))
	}
}

// pairHash hashes one (property, value) entry. The property contributes
// its name rather than its index so that maps whose keys lack indices
// (the hash fallback) still hash consistently with array-backed maps.
func pairHash(p *Property, v Value) uint64 {
	return fnvUint(fnvString(p.name), valueHash(v))
}
