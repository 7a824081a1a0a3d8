package server

import (
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) uint16 {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return uint16(l.Addr().(*net.TCPAddr).Port)
}

func TestOptions(t *testing.T) {
	s := NewHTTPServer(
		WithAddr("127.0.0.1", 9000),
		WithTimeout(time.Second, 2*time.Second, 0),
		WithShutdownTimeout(3*time.Second),
	).(*httpServer)

	assert.Equal(t, "127.0.0.1:9000", s.Addr())
	assert.Equal(t, time.Second, s.srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, s.srv.WriteTimeout)
	assert.Equal(t, defaultIdleTimeout, s.srv.IdleTimeout)
	assert.Equal(t, 3*time.Second, s.shutdownTimeout)
}

func TestRunAndShutdown(t *testing.T) {
	port := freePort(t)

	s := NewHTTPServer(
		WithAddr("127.0.0.1", port),
		WithHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})),
	)

	errs := make(chan error, 1)
	go func() { errs <- s.Run() }()

	url := fmt.Sprintf("http://127.0.0.1:%d/", port)

	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		resp.Body.Close()

		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Shutdown())
	assert.NoError(t, <-errs)
}
