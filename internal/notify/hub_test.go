package notify

import (
	"fmt"
	"strings"
	"testing"

	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func recv(t *testing.T, s *Subscriber) string {
	t.Helper()
	select {
	case msg := <-s.C:
		return string(msg)
	default:
		t.Fatal("expected a buffered message")
		return ""
	}
}

func TestBroadcastFraming(t *testing.T) {
	h := NewHub()
	sub := h.Register()

	h.Broadcast("order_created", map[string]any{"order_id": 1})

	msg := recv(t, sub)
	assert.True(t, strings.HasPrefix(msg, "event: order_created\n"))
	assert.Contains(t, msg, "data: {\"order_id\":1}")
	assert.True(t, strings.HasSuffix(msg, "\n\n"))
}

func TestBroadcastReachesEverySubscriber(t *testing.T) {
	h := NewHub()
	a := h.Register()
	b := h.Register()

	h.Broadcast("waiter_called", map[string]string{"table": "5"})

	assert.Contains(t, recv(t, a), "waiter_called")
	assert.Contains(t, recv(t, b), "waiter_called")
}

func TestSlowSubscriberMissesInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	slow := h.Register()
	fast := h.Register()

	for i := 0; i < subscriberBuffer+10; i++ {
		h.Broadcast("order_updated", map[string]int{"seq": i})
	}

	// The slow subscriber's buffer capped out; the extra events are gone but
	// nothing blocked and the fast subscriber kept its own buffer.
	assert.Len(t, slow.C, subscriberBuffer)
	assert.Len(t, fast.C, subscriberBuffer)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	h := NewHub()
	sub := h.Register()

	h.Unregister(sub)
	h.Unregister(sub) // second call must not panic on the closed channel
	assert.Zero(t, h.SubscriberCount())

	// Unregistering something never registered is a no-op too.
	h.Unregister(&Subscriber{C: make(chan []byte)})
}

func TestBroadcastSkipsUnserializablePayload(t *testing.T) {
	h := NewHub()
	sub := h.Register()

	h.Broadcast("bad", func() {})
	assert.Empty(t, sub.C)
}

func TestEmitPersistsRecordAndBroadcasts(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	sub := hub.Register()
	defer hub.Unregister(sub)

	Emit("waiter_called", models.Notification{
		EstablishmentID: 1,
		Type:            models.NotificationWaiterCalled,
		Title:           "Waiter called",
	}, map[string]string{"table_number": "5"})

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Contains(t, recv(t, sub), "event: waiter_called")

	// A failing insert is swallowed and the broadcast still goes out.
	require.NoError(t, db.Migrator().DropTable(&models.Notification{}))
	Emit("waiter_called", models.Notification{EstablishmentID: 1}, map[string]string{"table_number": "6"})
	assert.Contains(t, recv(t, sub), "\"table_number\":\"6\"")
}
