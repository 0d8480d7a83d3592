package order

import (
	"slices"

	"servicedesk/internal/core/domain/model/kernel"
)

// Rejecters is the set of accounts that declined an order. It only grows, holds
// no duplicates and is kept sorted.
type Rejecters struct {
	ids []kernel.ID
}

// NewRejecters builds a set from ids, dropping duplicates.
func NewRejecters(ids ...kernel.ID) Rejecters {
	r := Rejecters{}
	for _, id := range ids {
		r = r.With(id)
	}
	return r
}

// Contains reports whether id declined the order.
func (r Rejecters) Contains(id kernel.ID) bool {
	_, found := slices.BinarySearch(r.ids, id)
	return found
}

// With returns the set extended by id. The receiver is not modified.
func (r Rejecters) With(id kernel.ID) Rejecters {
	pos, found := slices.BinarySearch(r.ids, id)
	if found {
		return r
	}
	return Rejecters{ids: slices.Insert(slices.Clone(r.ids), pos, id)}
}

func (r Rejecters) Len() int {
	return len(r.ids)
}

func (r Rejecters) IDs() []kernel.ID {
	return slices.Clone(r.ids)
}

func (r Rejecters) Int64s() []int64 {
	out := make([]int64, len(r.ids))
	for i, id := range r.ids {
		out[i] = id.Int64()
	}
	return out
}
