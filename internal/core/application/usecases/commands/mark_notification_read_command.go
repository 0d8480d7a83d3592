package commands

import (
	"errors"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID uuid.UUID
	recipientID    kernel.ID

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(notificationID uuid.UUID, recipientID kernel.ID) (MarkNotificationReadCommand, error) {
	cmd := MarkNotificationReadCommand{}
	if err := errors.Join(
		cmd.setNotificationID(notificationID),
		cmd.setRecipientID(recipientID),
	); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	cmd.guard = guard.NewConstructorGuard()
	return cmd, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) NotificationID() uuid.UUID {
	return c.notificationID
}

func (c MarkNotificationReadCommand) RecipientID() kernel.ID {
	return c.recipientID
}

func (c *MarkNotificationReadCommand) setNotificationID(id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.NewValueIsRequiredError("notificationID")
	}
	c.notificationID = id
	return nil
}

func (c *MarkNotificationReadCommand) setRecipientID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recipientID = id
	return nil
}
