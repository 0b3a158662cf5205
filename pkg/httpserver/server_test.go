package httpserver

import (
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	s, err := New(handler, Port("0"))
	require.NoError(t, err)

	_, port, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)

	resp, err := http.Get("http://127.0.0.1:" + port + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	require.NoError(t, s.Shutdown())
	_, open := <-s.Notify()
	assert.False(t, open, "a clean shutdown closes Notify without an error")
}

func TestServer_PortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	_, port, _ := net.SplitHostPort(busy.Addr().String())
	_, err = New(http.NotFoundHandler(), Port(port))
	assert.Error(t, err)
}
