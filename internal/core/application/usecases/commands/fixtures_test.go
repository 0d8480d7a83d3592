package commands_test

import (
	"testing"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

const (
	orderID     kernel.ID = 100
	clientID    kernel.ID = 1
	workerID    kernel.ID = 2
	worker2ID   kernel.ID = 3
	orgID       kernel.ID = 4
	orgWorkerID kernel.ID = 5
	adminID     kernel.ID = 6
)

func actorOf(t *testing.T, id kernel.ID, role account.Role) account.Actor {
	t.Helper()
	a, err := account.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func accountOf(t *testing.T, id kernel.ID, role account.Role, supervisor *kernel.ID) *account.Account {
	t.Helper()
	zones, err := kernel.NewZones([]string{"north"})
	require.NoError(t, err)
	a, err := account.NewAccount(id, "account", "", role, zones, supervisor)
	require.NoError(t, err)
	return a
}

func orderDetails(t *testing.T) order.Details {
	t.Helper()
	zone, err := kernel.NewZone("north")
	require.NoError(t, err)
	details, err := order.NewDetails("no hot water", order.Address{Street: "Main", Number: "1"}, nil, zone)
	require.NoError(t, err)
	return details
}

// searchingOrder returns a fresh order with no pending events.
func searchingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(orderID, actorOf(t, clientID, account.RoleClient), orderDetails(t))
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func proposedOrder(t *testing.T, candidate *account.Account) *order.Order {
	t.Helper()
	o := searchingOrder(t)
	require.NoError(t, o.Propose(candidate))
	o.PullEvents()
	return o
}

func workerAssignedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := proposedOrder(t, accountOf(t, workerID, account.RoleWorker, nil))
	require.NoError(t, o.Accept(actorOf(t, workerID, account.RoleWorker)))
	o.PullEvents()
	return o
}

func orgPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o := proposedOrder(t, accountOf(t, orgID, account.RoleOrganizationAdmin, nil))
	require.NoError(t, o.Accept(actorOf(t, orgID, account.RoleOrganizationAdmin)))
	o.PullEvents()
	return o
}

func ptr[T any](v T) *T {
	return &v
}
