package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/supabase"
)

type RequestRepository interface {
	// Insert stores the request and returns the store-generated id.
	Insert(ctx context.Context, req *model.LandlordRequest) (int, error)
	All(ctx context.Context) ([]model.LandlordRequest, error)
	ByID(ctx context.Context, id int) (*model.LandlordRequest, error)
	Delete(ctx context.Context, id int) error
}

type requestRepository struct {
	client *supabase.Client
}

func NewRequestRepository(client *supabase.Client) RequestRepository {
	return &requestRepository{client: client}
}

func (r *requestRepository) Insert(ctx context.Context, req *model.LandlordRequest) (int, error) {
	var rows []model.LandlordRequest
	err := r.client.Insert(ctx, "landlord_requests", req, &rows)
	if err != nil {
		return 0, fmt.Errorf("insert landlord request: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert landlord request: %w", supabase.ErrDecode)
	}
	return rows[0].ID, nil
}

func (r *requestRepository) All(ctx context.Context) ([]model.LandlordRequest, error) {
	var rows []model.LandlordRequest
	err := r.client.Select(ctx, "landlord_requests", "order=created_at.desc", &rows)
	if err != nil {
		return nil, fmt.Errorf("get landlord requests: %w", err)
	}
	return rows, nil
}

func (r *requestRepository) ByID(ctx context.Context, id int) (*model.LandlordRequest, error) {
	query := url.Values{"id": {"eq." + strconv.Itoa(id)}}

	var rows []model.LandlordRequest
	err := r.client.Select(ctx, "landlord_requests", query.Encode(), &rows)
	if err != nil {
		return nil, fmt.Errorf("get landlord request: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrRequestNotFound
	}
	return &rows[0], nil
}

func (r *requestRepository) Delete(ctx context.Context, id int) error {
	query := url.Values{"id": {"eq." + strconv.Itoa(id)}}

	err := r.client.Delete(ctx, "landlord_requests", query.Encode())
	if err != nil {
		return fmt.Errorf("delete landlord request: %w", err)
	}
	return nil
}
