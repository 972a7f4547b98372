package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestDownload_SetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{UserAgent: "Example Corp research@example.com"})
	body, err := f.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, "Example Corp research@example.com", gotUA)
}

func TestDownload_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{})
	_, err := f.Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestDownload_NoRetryOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{})
	_, err := f.Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDownload_RateLimiterSpacesRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	host := srv.Listener.Addr().String()
	interval := 50 * time.Millisecond
	f := NewHTTPFetcher(HTTPOptions{
		RateLimiters: map[string]*rate.Limiter{
			host: rate.NewLimiter(rate.Every(interval), 1),
		},
	})

	start := time.Now()
	for range 3 {
		body, err := f.Download(context.Background(), srv.URL)
		require.NoError(t, err)
		body.Close()
	}
	// Burst of 1 means the second and third requests each wait one interval.
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestSECRateLimiters(t *testing.T) {
	limiters := SECRateLimiters(250 * time.Millisecond)
	require.Contains(t, limiters, "data.sec.gov")
	require.Contains(t, limiters, "www.sec.gov")
	assert.Equal(t, rate.Every(250*time.Millisecond), limiters["data.sec.gov"].Limit())

	// Non-positive interval falls back to the default pause.
	limiters = SECRateLimiters(0)
	assert.Equal(t, rate.Every(250*time.Millisecond), limiters["data.sec.gov"].Limit())
}
