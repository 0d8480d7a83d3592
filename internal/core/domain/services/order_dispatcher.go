package services

import (
	"cmp"
	"errors"
	"slices"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/order"
)

// ErrNoCandidatesFound is returned when none of the accounts in the pool may
// be proposed the order. It is informational: the order stays searching.
var ErrNoCandidatesFound = errors.New("no eligible candidates found")

// OrderDispatcher selects the party a searching order is proposed to.
//
// Business rules:
//   - Candidates are active independent workers or organization admins whose
//     coverage zones contain the order's zone
//   - Accounts that already rejected the order are never selected
//   - Candidates are ordered by ascending account id and the first one wins
//
// Example usage:
//
//	dispatcher := NewOrderDispatcher()
//	candidate, err := dispatcher.Dispatch(o, pool)
//	if errors.Is(err, ErrNoCandidatesFound) {
//	    // nothing to propose yet
//	}
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// FindCandidates returns the eligible accounts of pool in selection order.
// The pool may be pre-filtered by the store; the full rule is applied here.
func (d OrderDispatcher) FindCandidates(o *order.Order, pool []*account.Account) ([]*account.Account, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]*account.Account, 0, len(pool))
	for _, a := range pool {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if o.IsEligible(a) {
			candidates = append(candidates, a)
		}
	}

	slices.SortFunc(candidates, func(a, b *account.Account) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return candidates, nil
}

// Dispatch proposes the order to the first candidate of pool and returns it.
func (d OrderDispatcher) Dispatch(o *order.Order, pool []*account.Account) (*account.Account, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.IsSearching() {
		return nil, order.ErrOrderNotSearching
	}

	candidates, err := d.FindCandidates(o, pool)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidatesFound
	}

	chosen := candidates[0]
	if err := o.Propose(chosen); err != nil {
		return nil, err
	}
	return chosen, nil
}
