package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
	"gitlab.com/dirk.krummacker/contact-book/internal/storage"
)

// TestRound executes one benchmark round against the service on the seeded mock store. It expects
// every created contact to be deleted again, so only the samples remain.
func TestRound(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	facade, err := storage.Open(config.DatabaseConfig{}, storage.StaticPlatform(false), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, facade.Initialize(context.Background()))
	server := httptest.NewServer(service.SetupHttpRouter(facade, zerolog.Nop(), false))
	defer server.Close()

	b := &bench{baseURL: server.URL, client: server.Client()}
	_, err = b.round(5)
	require.NoError(t, err)

	contacts, err := facade.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

// TestRoundUnexpectedStatus expects the round to stop when the service does not answer as expected.
func TestRoundUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	b := &bench{baseURL: server.URL, client: server.Client()}
	_, err := b.round(1)
	assert.ErrorContains(t, err, "503")
}

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes("100, 500,1000")
	require.NoError(t, err)
	assert.Equal(t, []int{100, 500, 1000}, sizes)

	for _, s := range []string{"", "abc", "0", "10,-1"} {
		_, err := parseSizes(s)
		assert.Error(t, err, s)
	}
}
