package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/supabase"
)

type ReportRepository interface {
	Insert(ctx context.Context, report *model.ReportedReview) error
	All(ctx context.Context) ([]model.ReportedReview, error)
	Delete(ctx context.Context, id string) error
}

type reportRepository struct {
	client *supabase.Client
}

func NewReportRepository(client *supabase.Client) ReportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) Insert(ctx context.Context, report *model.ReportedReview) error {
	err := r.client.Insert(ctx, "reported_reviews", report, nil)
	if err != nil {
		return fmt.Errorf("insert reported review: %w", err)
	}
	return nil
}

func (r *reportRepository) All(ctx context.Context) ([]model.ReportedReview, error) {
	var rows []model.ReportedReview
	err := r.client.Select(ctx, "reported_reviews", "order=created_at.desc", &rows)
	if err != nil {
		return nil, fmt.Errorf("get reported reviews: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	query := url.Values{"id": {"eq." + id}}

	err := r.client.Delete(ctx, "reported_reviews", query.Encode())
	if err != nil {
		return fmt.Errorf("delete reported review: %w", err)
	}
	return nil
}
