package service

import (
	"context"
	"log/slog"

	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/repository"
)

// AdminService handles moderation of reported reviews.
type AdminService struct {
	reports repository.ReportRepository
	reviews repository.ReviewRepository
}

func NewAdminService(reports repository.ReportRepository, reviews repository.ReviewRepository) *AdminService {
	return &AdminService{reports: reports, reviews: reviews}
}

func (s *AdminService) Reported(ctx context.Context) ([]model.ReportedReview, error) {
	return s.reports.All(ctx)
}

// ApproveReport upholds a report: the report is resolved and the offending
// review is taken down. Review removal is best-effort once the report itself
// is gone.
func (s *AdminService) ApproveReport(ctx context.Context, id string) error {
	report, err := s.findReport(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}

	if report.ReviewID != "" {
		if err := s.reviews.Delete(ctx, report.ReviewID); err != nil {
			slog.WarnContext(ctx, "reported review not removed", "review_id", report.ReviewID, "error", err)
		}
	}
	return nil
}

// DenyReport dismisses a report and leaves the review in place.
func (s *AdminService) DenyReport(ctx context.Context, id string) error {
	if _, err := s.findReport(ctx, id); err != nil {
		return err
	}
	return s.reports.Delete(ctx, id)
}

func (s *AdminService) findReport(ctx context.Context, id string) (*model.ReportedReview, error) {
	reports, err := s.reports.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].ID == id {
			return &reports[i], nil
		}
	}
	return nil, repository.ErrReportNotFound
}
