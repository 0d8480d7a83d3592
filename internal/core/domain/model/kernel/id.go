package kernel

import (
	"fmt"
	"math"
	"strconv"

	"servicedesk/internal/pkg/errs"
)

// ID identifies orders and accounts. Valid ids are positive and are allocated
// by the store.
type ID int64

// NewID validates v and returns it as an ID.
func NewID(v int64) (ID, error) {
	id := ID(v)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal string such as a path parameter.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%q is not an integer", s))
	}
	return NewID(v)
}

// Validate reports whether the id is positive.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", int64(id), int64(1), int64(math.MaxInt64))
	}
	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IDPtr converts a nullable column value into a nullable ID.
func IDPtr(v *int64) *ID {
	if v == nil {
		return nil
	}
	id := ID(*v)
	return &id
}

// Int64Ptr is the inverse of IDPtr.
func Int64Ptr(id *ID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

// SameID reports whether a nullable id is set and equal to other.
func SameID(id *ID, other ID) bool {
	return id != nil && *id == other
}
