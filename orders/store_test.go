package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/config"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/statemachine"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := config.InitDB("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	return db
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewStore(newTestDB(t)).WithClock(clock.Now)
	return store, clock
}

func TestCreateAndLatest(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user_123", "Pizza", 299)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, created.Status)
	assert.Equal(t, statemachine.ETAInitial, created.ETA)

	// Immediately after placement the derived ETA is the full window.
	order, err := store.Latest(ctx, "user_123")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, created.ID, order.ID)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, "10:00", order.ETA)
}

func TestLatestNoOrders(t *testing.T) {
	store, _ := newTestStore(t)

	order, err := store.Latest(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestLatestReturnsNewestAndPersists(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "user_123", "Burger", 199)
	require.NoError(t, err)
	second, err := store.Create(ctx, "user_123", "Pasta", 249)
	require.NoError(t, err)

	clock.Advance(150 * time.Second)

	order, err := store.Latest(ctx, "user_123")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, second.ID, order.ID)
	assert.Equal(t, models.StatusPreparing, order.Status)

	// The derived pair must have been written back.
	stored, err := store.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, stored.Status)
	assert.Equal(t, order.ETA, stored.ETA)
}

func TestLatestFullLifecycle(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "user_123", "Pizza", 299)
	require.NoError(t, err)

	steps := []struct {
		advance time.Duration
		status  models.OrderStatus
	}{
		{0, models.StatusPlaced},
		{130 * time.Second, models.StatusPreparing},
		{200 * time.Second, models.StatusOutForDelivery}, // t=330s
		{271 * time.Second, models.StatusDelivered},      // t=601s
	}
	for _, step := range steps {
		clock.Advance(step.advance)
		order, err := store.Latest(ctx, "user_123")
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, step.status, order.Status)
	}

	order, _ := store.Latest(ctx, "user_123")
	assert.Equal(t, statemachine.ETADelivered, order.ETA)
}

func TestCancel(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user_123", "Pizza", 299)
	require.NoError(t, err)

	order, err := store.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, order.Status)
	assert.Equal(t, statemachine.ETANotAvailable, order.ETA)
}

func TestCancelIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user_123", "Pizza", 299)
	require.NoError(t, err)

	first, err := store.Cancel(ctx, created.ID)
	require.NoError(t, err)
	second, err := store.Cancel(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.ETA, second.ETA)
	assert.Equal(t, first.ID, second.ID)
}

func TestCancelDeliveredFails(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user_123", "Pizza", 299)
	require.NoError(t, err)

	// Past the delivery window the order is DELIVERED even though the
	// stored row still says PLACED; cancellation must fail on the derived
	// state and leave the row untouched.
	clock.Advance(601 * time.Second)

	_, err = store.Cancel(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)

	stored, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, models.StatusCancelled, stored.Status)
}

func TestCancelUnknownOrder(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Cancel(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user_123", "Pizza", 299)
	require.NoError(t, err)

	_, err = store.Cancel(ctx, created.ID)
	require.NoError(t, err)

	// Reactivation: status override with explicit ETA.
	eta := statemachine.ETAInitial
	order, err := store.SetStatus(ctx, created.ID, models.StatusPlaced, &eta)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, statemachine.ETAInitial, order.ETA)

	// Without an ETA the display is left alone.
	order, err = store.SetStatus(ctx, created.ID, models.StatusPreparing, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, order.Status)
	assert.Equal(t, statemachine.ETAInitial, order.ETA)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user_123", "Pizza", 299)
	require.NoError(t, err)

	_, err = store.SetStatus(ctx, created.ID, models.OrderStatus("EATEN"), nil)
	assert.Error(t, err)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.SetStatus(context.Background(), 9999, models.StatusPlaced, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
