package notify

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

func TestLogNotifier(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := log.New(log.Config{Output: &buf, Level: slog.LevelInfo})

	n := NewLogNotifier(true, logger)
	ok, err := n.RequestPermission(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, n.Notify(ctx, domain.Notification{Title: "Kanso reminder", Body: "Call mum"}))
	assert.Contains(t, buf.String(), "Kanso reminder")
	assert.Contains(t, buf.String(), "component=notify")

	denied, _ := NewLogNotifier(false, nil).RequestPermission(ctx)
	assert.False(t, denied)
}

func TestRedisNotifier_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb, err := cache.NewRedisClient(context.Background(), cache.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD"), DB: 1})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := NewRedisNotifier(rdb, "kanso:test:notifications", true, nil)
	ok, err := n.RequestPermission(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	received := make(chan domain.Notification, 1)
	go func() {
		_ = n.Listen(ctx, func(note domain.Notification) { received <- note })
	}()

	want := domain.Notification{Title: "Kanso reminder", Body: "Pay rent", Icon: "/icon.png"}
	assert.Eventually(t, func() bool {
		_ = n.Notify(ctx, want)
		select {
		case got := <-received:
			return assert.Equal(t, want, got)
		default:
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)

	disabled := NewRedisNotifier(rdb, "", false, nil)
	ok, err = disabled.RequestPermission(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
