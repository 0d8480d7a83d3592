package order

import (
	"strings"

	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"
)

const (
	MinRating = 1
	MaxRating = 5
)

var ErrRatingIsNotConstructed = errs.NewValueIsRequiredError("rating must be created via NewRating")

// Rating is the client's score of a completed order with an optional comment.
type Rating struct { //nolint:recvcheck //using for validation
	score   int
	comment string
	guard   guard.ConstructorGuard
}

func NewRating(score int, comment string) (Rating, error) {
	if score < MinRating || score > MaxRating {
		return Rating{}, errs.NewValueIsOutOfRangeError("rating", score, MinRating, MaxRating)
	}
	return Rating{
		score:   score,
		comment: strings.TrimSpace(comment),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (r Rating) Validate() error {
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

func (r Rating) Score() int {
	return r.score
}

func (r Rating) Comment() string {
	return r.comment
}
