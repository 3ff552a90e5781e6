package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenantlens/tenantlens/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(&config.Config{
		SupabaseURL:            srv.URL,
		SupabaseServiceRoleKey: "service-role-key",
		CacheTTL:               time.Minute,
	})
}

func TestClientNotConfigured(t *testing.T) {
	client := New(&config.Config{CacheTTL: time.Minute})

	var out []map[string]any
	err := client.Select(context.Background(), "users", "", &out)
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = client.Insert(context.Background(), "users", map[string]string{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClientSelectHeaders(t *testing.T) {
	var gotAuth, gotKey, gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		json.NewEncoder(w).Encode([]map[string]string{{"email": "a@b.com"}})
	})

	var out []map[string]string
	err := client.Select(context.Background(), "users", "email=eq.a%40b.com", &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer service-role-key", gotAuth)
	assert.Equal(t, "service-role-key", gotKey)
	assert.Equal(t, "/rest/v1/users?email=eq.a%40b.com", gotPath)
	require.Len(t, out, 1)
	assert.Equal(t, "a@b.com", out[0]["email"])
}

func TestClientInsertRepresentation(t *testing.T) {
	var gotPrefer string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]map[string]any{{"id": 7}})
	})

	var out []map[string]any
	err := client.Insert(context.Background(), "landlord_requests", map[string]string{"landlord_name": "X"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "return=representation", gotPrefer)
	require.Len(t, out, 1)
}

func TestClientInsertNoRepresentation(t *testing.T) {
	var gotPrefer string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Insert(context.Background(), "units", map[string]string{"unit_number": "2B"}, nil)
	require.NoError(t, err)
	assert.Empty(t, gotPrefer)
}

func TestClientStorageError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint"}`))
	})

	err := client.Insert(context.Background(), "reviews", map[string]string{"id": "10001"}, nil)
	require.Error(t, err)

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, http.StatusConflict, storageErr.Status)
	assert.True(t, IsDuplicateKey(err))
}

func TestClientDecodeError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	var out []map[string]any
	err := client.Select(context.Background(), "users", "", &out)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := New(&config.Config{
		SupabaseURL:            url,
		SupabaseServiceRoleKey: "k",
		CacheTTL:               time.Minute,
	})

	err := client.Select(context.Background(), "users", "", nil)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Zero(t, storageErr.Status)
}

func TestIsDuplicateKeyBody(t *testing.T) {
	assert.True(t, IsDuplicateKey(&StorageError{Status: 400, Body: `{"code":"23505"}`}))
	assert.True(t, IsDuplicateKey(&StorageError{Status: 409, Body: ""}))
	assert.False(t, IsDuplicateKey(&StorageError{Status: 500, Body: "boom"}))
	assert.False(t, IsDuplicateKey(context.DeadlineExceeded))
}
