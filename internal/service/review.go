package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/repository"
)

var (
	ErrLandlordRequired = errors.New("landlord_id is required")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrReviewRequired   = errors.New("title and review are required")
	ErrReasonRequired   = errors.New("reason is required")
)

type ReviewService struct {
	reviews repository.ReviewRepository
	reports repository.ReportRepository

	now func() time.Time
}

func NewReviewService(reviews repository.ReviewRepository, reports repository.ReportRepository) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		reports: reports,
		now:     time.Now,
	}
}

func (s *ReviewService) Submit(ctx context.Context, landlordID string, rating int, title, body string) (*model.Review, error) {
	if landlordID == "" {
		return nil, ErrLandlordRequired
	}
	if rating < 1 || rating > 5 {
		return nil, ErrRatingOutOfRange
	}
	if title == "" || body == "" {
		return nil, ErrReviewRequired
	}

	review := &model.Review{
		LandlordID: landlordID,
		Rating:     rating,
		Title:      title,
		Review:     body,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}
	return s.reviews.Insert(ctx, review)
}

func (s *ReviewService) ForLandlord(ctx context.Context, landlordID string) ([]model.Review, error) {
	return s.reviews.ByLandlord(ctx, landlordID)
}

// Report files a moderation report for a review. The review's title and body
// are copied onto the report so moderators see the content even if the review
// is later edited or removed.
func (s *ReviewService) Report(ctx context.Context, reviewID, reason, reportedBy string) (*model.ReportedReview, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	review, err := s.reviews.ByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	report := &model.ReportedReview{
		ID:         uuid.NewString(),
		ReviewID:   review.ID,
		Title:      review.Title,
		Review:     review.Review,
		Reason:     reason,
		ReportedBy: reportedBy,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
		Status:     model.ReportStatusPending,
	}
	if err := s.reports.Insert(ctx, report); err != nil {
		return nil, fmt.Errorf("file report: %w", err)
	}
	return report, nil
}
