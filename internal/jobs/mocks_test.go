package jobs_test

import (
	"context"

	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockProposer struct {
	mock.Mock
}

func (m *MockProposer) Handle(ctx context.Context, cmd commands.ProposeOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockSearchingOrders struct {
	mock.Mock
}

func (m *MockSearchingOrders) ListSearchingIDs(ctx context.Context, limit int) ([]kernel.ID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.ID), args.Error(1)
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(orderID kernel.ID, trigger commands.ProposalTrigger) {
	m.Called(orderID, trigger)
}
