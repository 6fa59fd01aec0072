package webhook

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wpsync/internal/service"
)

// stubRefresher records refreshed IDs and signals each call.
type stubRefresher struct {
	mu    sync.Mutex
	ids   []int64
	calls chan int64
	err   error
}

func newStubRefresher() *stubRefresher {
	return &stubRefresher{calls: make(chan int64, 16)}
}

func (s *stubRefresher) RefreshPost(_ context.Context, remoteID int64) (*service.RefreshResult, error) {
	s.mu.Lock()
	s.ids = append(s.ids, remoteID)
	s.mu.Unlock()
	s.calls <- remoteID
	if s.err != nil {
		return nil, s.err
	}
	return &service.RefreshResult{Created: true}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestServer(t *testing.T, refresher Refresher) (*httptest.Server, context.CancelFunc) {
	t.Helper()

	dispatcher := NewDispatcher(refresher, DispatcherConfig{
		QueueSize: 16,
		Workers:   2,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	dispatcher.Start(ctx)

	server := NewServer(":0", dispatcher, testLogger())
	ts := httptest.NewServer(server.httpServer.Handler)
	t.Cleanup(ts.Close)

	return ts, cancel
}

func postForm(t *testing.T, ts *httptest.Server, form url.Values) *http.Response {
	t.Helper()
	resp, err := http.Post(
		ts.URL+"/webhooks/wordpress",
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPushAcceptedAndRefreshed(t *testing.T) {
	refresher := newStubRefresher()
	ts, cancel := newTestServer(t, refresher)
	defer cancel()

	resp := postForm(t, ts, url.Values{"ID": {"101"}})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case id := <-refresher.calls:
		assert.Equal(t, int64(101), id)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh was never triggered")
	}
}

func TestPushMissingID(t *testing.T) {
	refresher := newStubRefresher()
	ts, cancel := newTestServer(t, refresher)
	defer cancel()

	resp := postForm(t, ts, url.Values{"other": {"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, refresher.ids)
}

func TestPushInvalidID(t *testing.T) {
	refresher := newStubRefresher()
	ts, cancel := newTestServer(t, refresher)
	defer cancel()

	for _, bad := range []string{"abc", "-5", "0"} {
		resp := postForm(t, ts, url.Values{"ID": {bad}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "ID=%s", bad)
	}
}

func TestHealth(t *testing.T) {
	refresher := newStubRefresher()
	ts, cancel := newTestServer(t, refresher)
	defer cancel()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestDispatcherDropsWhenSaturated(t *testing.T) {
	dispatcher := NewDispatcher(newStubRefresher(), DispatcherConfig{
		QueueSize: 2,
		Workers:   1,
	}, testLogger())
	// Workers never started, so the queue only drains by capacity.

	assert.True(t, dispatcher.Enqueue(1))
	assert.True(t, dispatcher.Enqueue(2))
	assert.False(t, dispatcher.Enqueue(3))
}

func TestDispatcherSettleDelay(t *testing.T) {
	refresher := newStubRefresher()
	dispatcher := NewDispatcher(refresher, DispatcherConfig{
		QueueSize:   4,
		Workers:     1,
		SettleDelay: 50 * time.Millisecond,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx)

	start := time.Now()
	require.True(t, dispatcher.Enqueue(101))

	select {
	case <-refresher.calls:
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh was never triggered")
	}
}

func TestDispatcherContinuesAfterRefreshError(t *testing.T) {
	refresher := newStubRefresher()
	refresher.err = assert.AnError

	dispatcher := NewDispatcher(refresher, DispatcherConfig{
		QueueSize: 4,
		Workers:   1,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx)

	require.True(t, dispatcher.Enqueue(101))
	require.True(t, dispatcher.Enqueue(102))

	for i := 0; i < 2; i++ {
		select {
		case <-refresher.calls:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after error")
		}
	}
}
