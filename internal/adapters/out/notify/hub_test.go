package notify_test

import (
	"sync"
	"testing"

	"servicedesk/internal/adapters/out/notify"
	"servicedesk/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesEveryStreamOfRecipient(t *testing.T) {
	hub := notify.NewHub(4)
	first := hub.Subscribe(1)
	second := hub.Subscribe(1)
	other := hub.Subscribe(2)
	defer first.Close()
	defer second.Close()
	defer other.Close()

	e := notify.Event{ID: uuid.New(), Kind: "order_created", Text: "hello"}
	delivered := hub.Publish(1, e)

	assert.Equal(t, 2, delivered)
	assert.Equal(t, e, <-first.Events())
	assert.Equal(t, e, <-second.Events())
	assert.Empty(t, other.Events())
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := notify.NewHub(1)

	assert.Zero(t, hub.Publish(kernel.ID(9), notify.Event{ID: uuid.New()}))
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := notify.NewHub(1)
	sub := hub.Subscribe(1)
	defer sub.Close()

	assert.Equal(t, 1, hub.Publish(1, notify.Event{Text: "kept"}))
	assert.Equal(t, 0, hub.Publish(1, notify.Event{Text: "dropped"}))

	got := <-sub.Events()
	assert.Equal(t, "kept", got.Text)
	assert.Empty(t, sub.Events())
}

func TestSubscription_CloseUnregistersAndClosesChannel(t *testing.T) {
	hub := notify.NewHub(1)
	sub := hub.Subscribe(1)
	require.Equal(t, 1, hub.Subscribers(1))

	sub.Close()
	sub.Close()

	assert.Zero(t, hub.Subscribers(1))
	_, open := <-sub.Events()
	assert.False(t, open)
	assert.Zero(t, hub.Publish(1, notify.Event{}))
}

func TestHub_ConcurrentPublishAndClose(t *testing.T) {
	hub := notify.NewHub(8)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		sub := hub.Subscribe(kernel.ID(i%3 + 1))
		go func() {
			defer wg.Done()
			for range 50 {
				hub.Publish(sub.RecipientID(), notify.Event{})
			}
		}()
		go func() {
			defer wg.Done()
			sub.Close()
		}()
	}
	wg.Wait()

	for id := kernel.ID(1); id <= 3; id++ {
		assert.Zero(t, hub.Subscribers(id))
	}
}

func TestHub_CloseEndsEveryStream(t *testing.T) {
	hub := notify.NewHub(1)
	first := hub.Subscribe(1)
	second := hub.Subscribe(2)

	hub.Close()
	hub.Close()

	_, ok := <-first.Events()
	assert.False(t, ok)
	_, ok = <-second.Events()
	assert.False(t, ok)
	assert.Zero(t, hub.Subscribers(1))
	assert.Zero(t, hub.Publish(1, notify.Event{ID: uuid.New()}))

	first.Close()

	late := hub.Subscribe(3)
	_, ok = <-late.Events()
	assert.False(t, ok)
	assert.Zero(t, hub.Subscribers(3))
	late.Close()
}
