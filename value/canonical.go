package value

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
)

// DuplicatePolicy selects how duplicate object keys are resolved.
type DuplicatePolicy uint8

const (
	// DuplicateLastWins keeps the member that appears last in construction order.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateReject fails with errs.ErrDuplicateKey.
	DuplicateReject
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateLastWins:
		return "LastWins"
	case DuplicateReject:
		return "Reject"
	default:
		return "Unknown"
	}
}

// SortMembers returns members ordered by ascending key bytes with duplicate keys resolved
// according to policy.
//
// The sort is stable, so among equal keys construction order decides which member is "last".
// If members is already strictly ascending the input slice is returned unchanged; otherwise
// a new slice is allocated and the input is left untouched.
func SortMembers(members []Member, policy DuplicatePolicy) ([]Member, error) {
	if isStrictlySorted(members) {
		return members, nil
	}

	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b Member) int {
		return strings.Compare(a.Key, b.Key)
	})

	// compact in place, keeping the last member of every run of equal keys
	out := sorted[:0]
	for i := 0; i < len(sorted); i++ {
		if i+1 < len(sorted) && sorted[i+1].Key == sorted[i].Key {
			if policy == DuplicateReject {
				return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateKey, sorted[i].Key)
			}

			continue
		}
		out = append(out, sorted[i])
	}

	return out, nil
}

func isStrictlySorted(members []Member) bool {
	for i := 1; i < len(members); i++ {
		if members[i-1].Key >= members[i].Key {
			return false
		}
	}

	return true
}

// Canonical returns v with every object, at every depth, sorted by key bytes and with
// duplicate keys resolved last-wins. This is exactly the shape that materializing an
// encoded v produces.
func Canonical(v Value) Value {
	switch v.Type() { //nolint: exhaustive
	case format.TypeArray:
		elems := make([]Value, len(v.arr))
		for i, e := range v.arr {
			elems[i] = Canonical(e)
		}

		return Array(elems...)
	case format.TypeObject:
		sorted, _ := SortMembers(v.obj, DuplicateLastWins)
		members := make([]Member, len(sorted))
		for i, m := range sorted {
			members[i] = Member{Key: m.Key, Value: Canonical(m.Value)}
		}

		return Object(members...)
	default:
		return v
	}
}

// Equal reports whether a and b are structurally identical. Object members are compared
// in order, so compare Canonical forms to ignore construction order. Doubles compare by
// bit pattern, which makes NaN equal to itself and distinguishes -0 from +0.
func Equal(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}

	switch a.Type() {
	case format.TypeNull:
		return true
	case format.TypeBool, format.TypeInt64, format.TypeUInt64, format.TypeDouble:
		return a.bits == b.bits
	case format.TypeString:
		return a.str == b.str
	case format.TypeArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}

		return true
	case format.TypeObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for i := range a.obj {
			if a.obj[i].Key != b.obj[i].Key || !Equal(a.obj[i].Value, b.obj[i].Value) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
