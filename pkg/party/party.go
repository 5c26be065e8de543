// Package party defines the identifiers used to label shares and
// participants in a sharing.
package party

import (
	"sort"

	"github.com/cronokirby/saferith"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
)

// ID identifies a share holder / participant. Shares are indexed by the
// nonzero field element this ID lifts to, via Scalar.
type ID string

// Scalar lifts the ID into the curve's scalar field by interpreting its
// bytes as a big-endian natural number. Callers are responsible for using
// IDs that lift to distinct nonzero scalars (small decimal IDs such as
// "1".."n" are the common case and always do).
func (id ID) Scalar(group curve.Curve) curve.Scalar {
	nat := new(saferith.Nat).SetBytes([]byte(id))
	return group.NewScalar().SetNat(nat)
}

// IDSlice is a sortable slice of IDs, used whenever a deterministic
// ordering of participants is required.
type IDSlice []ID

func (s IDSlice) Len() int           { return len(s) }
func (s IDSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s IDSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Sort returns a sorted copy of the slice.
func (s IDSlice) Sort() IDSlice {
	out := make(IDSlice, len(s))
	copy(out, s)
	sort.Sort(out)
	return out
}

// Contains reports whether id appears in the slice.
func (s IDSlice) Contains(id ID) bool {
	for _, x := range s {
		if x == id {
			return true
		}
	}
	return false
}
