package account

import (
	"errors"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated account performing an operation.
type Actor struct {
	id    kernel.ID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id kernel.ID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.ID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor is the account id refers to.
func (a Actor) Is(id *kernel.ID) bool {
	return kernel.SameID(id, a.id)
}
