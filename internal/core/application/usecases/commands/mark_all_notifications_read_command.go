package commands

import (
	"errors"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/guard"
)

var ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
)

type MarkAllNotificationsReadCommand struct {
	recipientID kernel.ID

	guard guard.ConstructorGuard
}

func NewMarkAllNotificationsReadCommand(recipientID kernel.ID) (MarkAllNotificationsReadCommand, error) {
	if err := recipientID.Validate(); err != nil {
		return MarkAllNotificationsReadCommand{}, err
	}
	return MarkAllNotificationsReadCommand{
		recipientID: recipientID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

func (c MarkAllNotificationsReadCommand) RecipientID() kernel.ID {
	return c.recipientID
}
