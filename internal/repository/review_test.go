package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenantlens/tenantlens/internal/config"
	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/supabase"
)

func testStore(t *testing.T, handler http.HandlerFunc) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return supabase.New(&config.Config{
		SupabaseURL:            srv.URL,
		SupabaseServiceRoleKey: "k",
		CacheTTL:               time.Minute,
	})
}

func TestReviewInsertRetriesOnDuplicateKey(t *testing.T) {
	var posts int
	var ids []string
	store := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		posts++

		body, _ := io.ReadAll(r.Body)
		var review model.Review
		require.NoError(t, json.Unmarshal(body, &review))
		ids = append(ids, review.ID)

		if posts < 3 {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"code":"23505"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("[" + string(body) + "]"))
	})

	repo := &reviewRepository{
		client: store,
		newID:  func(attempt int) string { return "id-" + strconv.Itoa(attempt) },
	}

	review := &model.Review{LandlordID: "ll-1", Rating: 4, Title: "t", Review: "r"}
	inserted, err := repo.Insert(context.Background(), review)
	require.NoError(t, err)

	assert.Equal(t, 3, posts)
	assert.Equal(t, []string{"id-0", "id-1", "id-2"}, ids)
	assert.Equal(t, "id-2", inserted.ID)
}

func TestReviewInsertGivesUpAfterThreeAttempts(t *testing.T) {
	var posts int
	store := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		posts++
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"23505"}`))
	})

	repo := &reviewRepository{
		client: store,
		newID:  func(attempt int) string { return "id-" + strconv.Itoa(attempt) },
	}

	_, err := repo.Insert(context.Background(), &model.Review{LandlordID: "ll-1", Rating: 4, Title: "t", Review: "r"})
	require.Error(t, err)
	assert.True(t, supabase.IsDuplicateKey(err))
	assert.Equal(t, 3, posts)
}

func TestReviewInsertNonDuplicateFailsFast(t *testing.T) {
	var posts int
	store := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		posts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	repo := &reviewRepository{
		client: store,
		newID:  newReviewID,
	}

	_, err := repo.Insert(context.Background(), &model.Review{LandlordID: "ll-1", Rating: 4, Title: "t", Review: "r"})
	require.Error(t, err)
	assert.Equal(t, 1, posts)
}

func TestReviewRatingsCached(t *testing.T) {
	var gets int
	store := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		gets++
		json.NewEncoder(w).Encode([]model.ReviewRating{{LandlordID: "ll-1", Rating: 5}})
	})

	repo := NewReviewRepository(store)

	first, err := repo.Ratings(context.Background())
	require.NoError(t, err)
	second, err := repo.Ratings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, gets, "second read must come from cache")
}

func TestReviewInsertInvalidatesRatingsCache(t *testing.T) {
	var gets int
	store := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gets++
			json.NewEncoder(w).Encode([]model.ReviewRating{{LandlordID: "ll-1", Rating: 5}})
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`[{"id":"10001","landlord_id":"ll-1","rating":5}]`))
		}
	})

	repo := NewReviewRepository(store)

	_, err := repo.Ratings(context.Background())
	require.NoError(t, err)

	_, err = repo.Insert(context.Background(), &model.Review{LandlordID: "ll-1", Rating: 5, Title: "t", Review: "r"})
	require.NoError(t, err)

	_, err = repo.Ratings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, gets, "insert must invalidate the ratings cache")
}

func TestNewReviewIDShape(t *testing.T) {
	for attempt := 0; attempt < 2; attempt++ {
		id := newReviewID(attempt)
		n, err := strconv.Atoi(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
		assert.Less(t, n, 100000)
	}

	// Third attempt falls back to a timestamp-derived id
	id := newReviewID(2)
	n, err := strconv.ParseInt(id, 10, 64)
	require.NoError(t, err)
	assert.Greater(t, n, int64(100000))
}
