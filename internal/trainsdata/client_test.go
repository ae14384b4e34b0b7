package trainsdata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mirzahilmi/amtrak-trains/internal/trainsdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(fixtureBlob))
	}))
	defer srv.Close()

	body, err := trainsdata.NewClient(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixtureBlob, body)

	fc, err := newDecrypter().Decrypt(body)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 1)
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := trainsdata.NewClient(srv.URL, time.Second).Fetch(context.Background())
	assert.ErrorIs(t, err, trainsdata.ErrUnexpectedStatus)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := trainsdata.NewClient(srv.URL, 50*time.Millisecond).Fetch(context.Background())
	assert.Error(t, err)
}
