package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

func TestNewService_EmptyEndpointIsNoop(t *testing.T) {
	svc := NewService(model.NotifyConfig{}, slog.Default())
	require.NotNil(t, svc)
	assert.NoError(t, svc.Test(context.Background()))
	assert.NoError(t, svc.NotifyMatchesFound(context.Background(), "u1", "wallet", 3))
}

func TestNtfyService_SendsHeaders(t *testing.T) {
	var (
		gotTitle string
		gotTags  string
		gotBody  []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewService(model.NotifyConfig{Endpoint: srv.URL, Timeout: 5}, slog.Default())
	err := svc.NotifyClaimSubmitted(context.Background(), "owner-1", "Black wallet", 0.91)
	require.NoError(t, err)

	assert.Equal(t, "Refind - Claim Submitted", gotTitle)
	assert.Contains(t, gotTags, "user-owner-1")
	assert.Contains(t, string(gotBody), "Black wallet")
	assert.Contains(t, string(gotBody), "0.91")
}

func TestNtfyService_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic not found", http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewService(model.NotifyConfig{Endpoint: srv.URL}, slog.Default())
	err := svc.Test(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestNotifyClaimDecided_Wording(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewService(model.NotifyConfig{Endpoint: srv.URL}, slog.Default())
	require.NoError(t, svc.NotifyClaimDecided(context.Background(), "u1", "umbrella", model.ClaimApproved))
	require.NoError(t, svc.NotifyClaimDecided(context.Background(), "u1", "umbrella", model.ClaimRejected))

	require.Len(t, bodies, 2)
	assert.Contains(t, bodies[0], "approved")
	assert.Contains(t, bodies[1], "rejected")
}
