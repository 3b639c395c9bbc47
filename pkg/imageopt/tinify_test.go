package imageopt

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"fundbrief/internal/model"
)

func TestTinifyOptimize_RejectsFailedInput(t *testing.T) {
	opt := NewTinifyOptimizer("test-key")

	result := opt.Optimize(context.Background(), model.ImageResult{Success: false})

	assert.Equal(t, false, result.Success)
	assert.Equal(t, "", result.Base64)
}

func TestTinifyOptimize_KeepsOriginalOnProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	original := model.ImageResult{
		Base64:  base64.StdEncoding.EncodeToString([]byte("original-png-bytes")),
		Success: true,
	}

	opt := newTestOptimizer(srv)
	result := opt.Optimize(context.Background(), original)

	assert.Equal(t, true, result.Success)
	assert.Equal(t, original.Base64, result.Base64)
}

func TestTinifyOptimize_KeepsOriginalOnBadBase64(t *testing.T) {
	opt := NewTinifyOptimizer("test-key")

	original := model.ImageResult{Base64: "not valid base64!!!", Success: true}
	result := opt.Optimize(context.Background(), original)

	assert.Equal(t, true, result.Success)
	assert.Equal(t, original.Base64, result.Base64)
}

func TestTinifyOptimize_ReplacesPayloadOnSuccess(t *testing.T) {
	compressed := []byte("compressed-png-bytes")

	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shrink":
			user, pass, ok := r.BasicAuth()
			assert.Equal(t, true, ok)
			assert.Equal(t, "api", user)
			assert.Equal(t, "test-key", pass)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprintf(w, `{"output":{"url":%q}}`, srvURL+"/output/abc123")
		case "/output/abc123":
			w.Write(compressed)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	original := model.ImageResult{
		Base64:  base64.StdEncoding.EncodeToString([]byte("original-png-bytes")),
		Success: true,
	}

	opt := newTestOptimizer(srv)
	result := opt.Optimize(context.Background(), original)

	assert.Equal(t, true, result.Success)
	assert.Equal(t, base64.StdEncoding.EncodeToString(compressed), result.Base64)
}

func TestPassthroughOptimize(t *testing.T) {
	opt := &Passthrough{}

	original := model.ImageResult{Base64: "abc", Success: true}
	assert.Equal(t, original, opt.Optimize(context.Background(), original))

	failed := opt.Optimize(context.Background(), model.ImageResult{Success: false})
	assert.Equal(t, false, failed.Success)
	assert.Equal(t, "", failed.Base64)
}

func newTestOptimizer(srv *httptest.Server) *TinifyOptimizer {
	client := srv.Client()
	client.Timeout = 5 * time.Second
	client.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return &TinifyOptimizer{apiKey: "test-key", httpClient: client}
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
