package commands_test

import (
	"context"
	"sync"

	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) NextID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListSearchingIDs(ctx context.Context, limit int) ([]kernel.ID, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]kernel.ID), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.ID) (*account.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindCandidatePool(ctx context.Context, zone kernel.Zone) ([]*account.Account, error) {
	args := m.Called(ctx, zone)
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveIDsByRoles(ctx context.Context, roles []account.Role) ([]kernel.ID, error) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]kernel.ID), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(
	ctx context.Context,
	id uuid.UUID,
	recipientID kernel.ID,
) (*notification.Notification, error) {
	args := m.Called(ctx, id, recipientID)
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.ID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW drains events from the orders handed to the repositories, the way
// the gorm unit of work does with its tracked aggregates.
type MockUoW struct {
	mock.Mock

	tracked []*order.Order
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Track(o *order.Order) {
	m.tracked = append(m.tracked, o)
}

func (m *MockUoW) PullEvents() []order.Event {
	var events []order.Event
	for _, o := range m.tracked {
		events = append(events, o.PullEvents()...)
	}
	return events
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotificationUoW struct {
	mock.Mock
}

func (m *MockNotificationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockNotificationUoWFactory struct {
	mock.Mock
}

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

// RecordingNotifier keeps every delivered message.
type RecordingNotifier struct {
	mu     sync.Mutex
	direct map[kernel.ID][]notification.Kind
	roles  []notification.Kind
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{direct: make(map[kernel.ID][]notification.Kind)}
}

func (n *RecordingNotifier) Notify(_ context.Context, recipientID kernel.ID, msg notification.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.direct[recipientID] = append(n.direct[recipientID], msg.Kind)
}

func (n *RecordingNotifier) NotifyRoles(_ context.Context, _ []account.Role, msg notification.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.roles = append(n.roles, msg.Kind)
}

func (n *RecordingNotifier) Direct(id kernel.ID) []notification.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.direct[id]
}

func (n *RecordingNotifier) Roles() []notification.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.roles
}

func (n *RecordingNotifier) Total() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := len(n.roles)
	for _, kinds := range n.direct {
		total += len(kinds)
	}
	return total
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(orderID kernel.ID, trigger commands.ProposalTrigger) {
	m.Called(orderID, trigger)
}

type MockProposer struct {
	mock.Mock
}

func (m *MockProposer) Handle(ctx context.Context, cmd commands.ProposeOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
