package repository

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/supabase"
)

const reviewsCacheKey = "reviews"

// insert attempts per review: the initial try plus two retries with a fresh
// identifier when the store reports a duplicate key.
const reviewInsertRetries = 2

type ReviewRepository interface {
	// Insert stores the review under a generated identifier, retrying with
	// a new one on duplicate-key collisions. The stored representation is
	// returned.
	Insert(ctx context.Context, review *model.Review) (*model.Review, error)
	ByID(ctx context.Context, id string) (*model.Review, error)
	ByLandlord(ctx context.Context, landlordID string) ([]model.Review, error)
	// Ratings returns the slim landlord_id/rating projection of all
	// reviews, served from cache when fresh.
	Ratings(ctx context.Context) ([]model.ReviewRating, error)
	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	client *supabase.Client
	newID  func(attempt int) string
}

func NewReviewRepository(client *supabase.Client) ReviewRepository {
	return &reviewRepository{client: client, newID: newReviewID}
}

// newReviewID generates a 5-digit identifier. Random collisions are rare, so
// after two random draws the fallback switches to a timestamp-derived value
// that cannot collide with earlier draws.
func newReviewID(attempt int) string {
	if attempt < 2 {
		return strconv.Itoa(10000 + rand.IntN(90000))
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func (r *reviewRepository) Insert(ctx context.Context, review *model.Review) (*model.Review, error) {
	attempt := 0
	var inserted model.Review

	backoff := retry.WithMaxRetries(reviewInsertRetries, retry.NewConstant(50*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		review.ID = r.newID(attempt)
		attempt++

		var rows []model.Review
		err := r.client.Insert(ctx, "reviews", review, &rows)
		if err != nil {
			if supabase.IsDuplicateKey(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		if len(rows) > 0 {
			inserted = rows[0]
		} else {
			inserted = *review
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	r.client.Cache.Invalidate(reviewsCacheKey)
	return &inserted, nil
}

func (r *reviewRepository) ByID(ctx context.Context, id string) (*model.Review, error) {
	query := url.Values{"id": {"eq." + id}}

	var rows []model.Review
	err := r.client.Select(ctx, "reviews", query.Encode(), &rows)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrReviewNotFound
	}
	return &rows[0], nil
}

func (r *reviewRepository) ByLandlord(ctx context.Context, landlordID string) ([]model.Review, error) {
	query := url.Values{
		"landlord_id": {"eq." + landlordID},
		"order":       {"created_at.desc"},
	}

	var rows []model.Review
	err := r.client.Select(ctx, "reviews", query.Encode(), &rows)
	if err != nil {
		return nil, fmt.Errorf("get reviews for landlord: %w", err)
	}
	return rows, nil
}

func (r *reviewRepository) Ratings(ctx context.Context) ([]model.ReviewRating, error) {
	if cached, ok := r.client.Cache.Get(reviewsCacheKey); ok {
		return cached.([]model.ReviewRating), nil
	}

	query := url.Values{
		"select": {"landlord_id,rating"},
		"order":  {"created_at.desc"},
	}

	var rows []model.ReviewRating
	err := r.client.Select(ctx, "reviews", query.Encode(), &rows)
	if err != nil {
		return nil, fmt.Errorf("get all reviews: %w", err)
	}

	r.client.Cache.Put(reviewsCacheKey, rows)
	return rows, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	query := url.Values{"id": {"eq." + id}}

	err := r.client.Delete(ctx, "reviews", query.Encode())
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	r.client.Cache.Invalidate(reviewsCacheKey)
	return nil
}
