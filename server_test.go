package pitchtrack

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_StartAndStop(t *testing.T) {
	b := newTestBroadcaster(t)
	server := NewServer("127.0.0.1:0", b, WithServerLogger(discardLogger))

	// Channel to capture any errors from Start()
	startErrChan := make(chan error, 1)
	go func() {
		startErrChan <- server.Start()
	}()

	// Give server a moment to start
	time.Sleep(100 * time.Millisecond)

	err := server.Stop()
	assert.NoError(t, err, "Server should stop without error")

	select {
	case startErr := <-startErrChan:
		assert.NoError(t, startErr, "Start() should complete without error after Stop()")
	case <-time.After(2 * time.Second):
		t.Fatal("Start() method should have completed after Stop() was called")
	}
}

func TestServer_StartInvalidAddr(t *testing.T) {
	b := newTestBroadcaster(t)
	server := NewServer("256.0.0.1:bad", b, WithServerLogger(discardLogger))
	assert.Error(t, server.Start())
}

func TestServer_Metrics(t *testing.T) {
	b := newTestBroadcaster(t)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pitchtrack_frames_total 3\n")
	})
	server := NewServer("", b, WithServerLogger(discardLogger), WithMetricsHandler(metrics))

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "pitchtrack_frames_total")
}

func TestServer_DefaultMetricsHandler(t *testing.T) {
	b := newTestBroadcaster(t)
	server := NewServer("", b, WithServerLogger(discardLogger))

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_StopWithoutStart(t *testing.T) {
	b := newTestBroadcaster(t)
	server := NewServer("127.0.0.1:0", b,
		WithServerLogger(discardLogger),
		WithShutdownTimeout(time.Second))

	assert.NoError(t, server.Stop())
	// A second Stop must not panic on the closed quit channel.
	assert.NoError(t, server.Stop())
}
