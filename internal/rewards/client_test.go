package rewards_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/rewards"
)

func TestClient_Unlock(t *testing.T) {
	var gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotUser = body["p_user_id"]
		_, _ = w.Write([]byte(`{"unlocked":[{"id":4},{"id":5}]}`))
	}))
	defer srv.Close()

	n, err := rewards.New(srv.URL).Unlock(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "u1", gotUser)
}

func TestClient_UnlockBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[7]`))
	}))
	defer srv.Close()

	n, err := rewards.New(srv.URL).Unlock(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClient_UnlockErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := rewards.New(srv.URL).Unlock(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_UnlockTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "200")
		_, _ = w.Write([]byte(`{"unlocked":[{"id":4},`))
	}))
	defer srv.Close()

	n, err := rewards.New(srv.URL).Unlock(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read unlock response")
	assert.Zero(t, n)
}

func TestNewUnlocker_EmptyURLIsNoop(t *testing.T) {
	u := rewards.NewUnlocker("")
	_, ok := u.(rewards.Noop)
	assert.True(t, ok)

	n, err := u.Unlock(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Zero(t, n)
}
