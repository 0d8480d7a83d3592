package http_test

import (
	"context"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockHandler[C any] struct {
	mock.Mock
}

func (m *MockHandler[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockResultHandler[C, R any] struct {
	mock.Mock
}

func (m *MockResultHandler[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(R), args.Error(1)
}

type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) Get(ctx context.Context, id kernel.ID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}
