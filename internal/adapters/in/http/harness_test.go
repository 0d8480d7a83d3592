package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "servicedesk/internal/adapters/in/http"
	"servicedesk/internal/adapters/out/notify"
	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/application/usecases/queries"
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "servicedesk-test"

	clientID   kernel.ID = 1
	workerID   kernel.ID = 2
	orgID      kernel.ID = 4
	adminID    kernel.ID = 6
	inactiveID kernel.ID = 8
	unknownID  kernel.ID = 9
)

type testAPI struct {
	e        *echo.Echo
	auth     *httpadapter.Authenticator
	hub      *notify.Hub
	accounts *MockAccountReader

	createOrder     *MockResultHandler[commands.CreateOrderCommand, kernel.ID]
	updateOrder     *MockHandler[commands.UpdateOrderCommand]
	deleteOrder     *MockHandler[commands.DeleteOrderCommand]
	reactivateOrder *MockHandler[commands.ReactivateOrderCommand]
	acceptProposal  *MockHandler[commands.AcceptProposalCommand]
	rejectProposal  *MockHandler[commands.RejectProposalCommand]
	markRead        *MockHandler[commands.MarkNotificationReadCommand]
	markAllRead     *MockResultHandler[commands.MarkAllNotificationsReadCommand, int64]
	getOrder        *MockResultHandler[queries.GetOrderQuery, queries.OrderView]
	listOrders      *MockResultHandler[queries.ListOrdersQuery, queries.ListOrdersQueryResponse]
	listInbox       *MockResultHandler[queries.ListNotificationsQuery, queries.ListNotificationsQueryResponse]
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	a := &testAPI{
		hub:             notify.NewHub(4),
		accounts:        new(MockAccountReader),
		createOrder:     new(MockResultHandler[commands.CreateOrderCommand, kernel.ID]),
		updateOrder:     new(MockHandler[commands.UpdateOrderCommand]),
		deleteOrder:     new(MockHandler[commands.DeleteOrderCommand]),
		reactivateOrder: new(MockHandler[commands.ReactivateOrderCommand]),
		acceptProposal:  new(MockHandler[commands.AcceptProposalCommand]),
		rejectProposal:  new(MockHandler[commands.RejectProposalCommand]),
		markRead:        new(MockHandler[commands.MarkNotificationReadCommand]),
		markAllRead:     new(MockResultHandler[commands.MarkAllNotificationsReadCommand, int64]),
		getOrder:        new(MockResultHandler[queries.GetOrderQuery, queries.OrderView]),
		listOrders:      new(MockResultHandler[queries.ListOrdersQuery, queries.ListOrdersQueryResponse]),
		listInbox:       new(MockResultHandler[queries.ListNotificationsQuery, queries.ListNotificationsQueryResponse]),
	}

	for id, role := range map[kernel.ID]account.Role{
		clientID: account.RoleClient,
		workerID: account.RoleWorker,
		orgID:    account.RoleOrganizationAdmin,
		adminID:  account.RolePlatformAdmin,
	} {
		a.accounts.On("Get", mock.Anything, id).Return(testAccount(t, id, role, true), nil).Maybe()
	}
	a.accounts.On("Get", mock.Anything, inactiveID).
		Return(testAccount(t, inactiveID, account.RoleWorker, false), nil).Maybe()
	a.accounts.On("Get", mock.Anything, unknownID).
		Return(nil, errs.NewObjectNotFoundError("account", unknownID)).Maybe()

	a.auth = httpadapter.NewAuthenticator(httpadapter.AuthConfig{
		Secret: []byte(testSecret),
		Issuer: testIssuer,
	}, a.accounts)

	doc, err := httpadapter.LoadOpenAPI(context.Background())
	require.NoError(t, err)
	validator, err := httpadapter.RequestValidator(doc)
	require.NoError(t, err)

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:              a.createOrder,
		UpdateOrder:              a.updateOrder,
		DeleteOrder:              a.deleteOrder,
		ReactivateOrder:          a.reactivateOrder,
		AcceptProposal:           a.acceptProposal,
		RejectProposal:           a.rejectProposal,
		MarkNotificationRead:     a.markRead,
		MarkAllNotificationsRead: a.markAllRead,
		GetOrder:                 a.getOrder,
		ListOrders:               a.listOrders,
		ListNotifications:        a.listInbox,
	}, a.hub)

	a.e = httpadapter.NewRouter(
		httpadapter.RouterConfig{RequestTimeout: 5 * time.Second, ExposeInternalErrors: true, LogLevel: "off"},
		server,
		a.auth,
		validator,
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return a
}

func (a *testAPI) do(t *testing.T, method, path, body string, as kernel.ID) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if as != 0 {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, as))
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, id kernel.ID) string {
	t.Helper()
	raw, err := httpadapter.IssueToken([]byte(testSecret), testIssuer, id, time.Hour)
	require.NoError(t, err)
	return raw
}

func testAccount(t *testing.T, id kernel.ID, role account.Role, active bool) *account.Account {
	t.Helper()
	zones, err := kernel.NewZones([]string{"north"})
	require.NoError(t, err)
	a, err := account.RestoreAccount(id, "account", "", role, active, zones, nil)
	require.NoError(t, err)
	return a
}

func orderView(id int64, state string) queries.OrderView {
	return queries.OrderView{
		ID:          id,
		ClientID:    clientID.Int64(),
		Rejecters:   []int64{},
		State:       state,
		Active:      true,
		Zone:        "north",
		Description: "no hot water",
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

