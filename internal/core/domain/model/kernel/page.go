package kernel

import (
	"errors"
	"math"

	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrPageIsNotConstructed = errs.NewValueIsRequiredError("page must be created via NewPage")

// Page is an offset/limit window over a listing. Zero number or size fall
// back to the first page and the default size.
type Page struct { //nolint:recvcheck //using for validation
	number int
	size   int
	guard  guard.ConstructorGuard
}

func NewPage(number, size int) (Page, error) {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}

	p := Page{guard: guard.NewConstructorGuard()}
	if err := errors.Join(p.setNumber(number), p.setSize(size)); err != nil {
		return Page{}, err
	}
	return p, nil
}

// DefaultPage is the first page with the default size.
func DefaultPage() Page {
	return Page{number: 1, size: DefaultPageSize, guard: guard.NewConstructorGuard()}
}

func (p Page) Validate() error {
	return p.guard.Validate(ErrPageIsNotConstructed)
}

func (p Page) Number() int {
	return p.number
}

func (p Page) Size() int {
	return p.size
}

func (p Page) Offset() int {
	return (p.number - 1) * p.size
}

// TotalPages returns how many pages of this size hold total items.
func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.size)))
}

func (p *Page) setNumber(number int) error {
	if number < 1 {
		return errs.NewValueIsOutOfRangeError("page", number, 1, math.MaxInt32)
	}
	p.number = number
	return nil
}

func (p *Page) setSize(size int) error {
	if size < 1 || size > MaxPageSize {
		return errs.NewValueIsOutOfRangeError("limit", size, 1, MaxPageSize)
	}
	p.size = size
	return nil
}
