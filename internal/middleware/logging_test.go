package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owlconnect/matching-platform/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

// hijackRecorder records whether Hijack was delegated to it.
type hijackRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (r *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.hijacked = true
	client, server := net.Pipe()
	_ = server.Close()
	return client, bufio.NewReadWriter(bufio.NewReader(client), bufio.NewWriter(client)), nil
}

func TestLogging_PreservesHijacker(t *testing.T) {
	handled := false
	h := Logging(testLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		hj, ok := w.(http.Hijacker)
		require.True(t, ok, "response writer lost http.Hijacker")
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	}))

	rec := &hijackRecorder{ResponseRecorder: httptest.NewRecorder()}
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/negotiation/abc", nil))

	assert.True(t, handled)
	assert.True(t, rec.hijacked, "hijack was not delegated to the underlying writer")
}

func TestLogging_HijackWithoutSupport(t *testing.T) {
	h := Logging(testLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		_, _, err := hj.Hijack()
		assert.Error(t, err)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
}
