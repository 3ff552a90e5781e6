package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/repository"
)

var ErrLandlordNameRequired = errors.New("landlord_name is required")

type LandlordService struct {
	landlords repository.LandlordRepository
	reviews   repository.ReviewRepository
	requests  repository.RequestRepository
}

func NewLandlordService(landlords repository.LandlordRepository, reviews repository.ReviewRepository, requests repository.RequestRepository) *LandlordService {
	return &LandlordService{
		landlords: landlords,
		reviews:   reviews,
		requests:  requests,
	}
}

func (s *LandlordService) All(ctx context.Context) ([]model.Landlord, error) {
	return s.landlords.All(ctx)
}

// Search filters landlords by case-insensitive substring match on the name.
// An empty query returns everything.
func (s *LandlordService) Search(ctx context.Context, name string) ([]model.Landlord, error) {
	all, err := s.landlords.All(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return all, nil
	}

	matched := []model.Landlord{}
	for _, ll := range all {
		if strings.Contains(strings.ToLower(ll.Name), name) {
			matched = append(matched, ll)
		}
	}
	return matched, nil
}

func (s *LandlordService) Stats(ctx context.Context) (*model.LandlordStats, error) {
	return s.landlords.Stats(ctx)
}

// Leaderboard ranks landlords that have at least one review by average
// rating, ties broken by review count.
func (s *LandlordService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	ratings, err := s.reviews.Ratings(ctx)
	if err != nil {
		return nil, err
	}
	landlords, err := s.landlords.All(ctx)
	if err != nil {
		return nil, err
	}

	type tally struct {
		sum   int
		count int
	}
	tallies := make(map[string]*tally)
	for _, r := range ratings {
		t := tallies[r.LandlordID]
		if t == nil {
			t = &tally{}
			tallies[r.LandlordID] = t
		}
		t.sum += r.Rating
		t.count++
	}

	entries := []model.LeaderboardEntry{}
	for _, ll := range landlords {
		t := tallies[ll.LandlordID]
		if t == nil {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			LandlordID:  ll.LandlordID,
			Name:        ll.Name,
			AvgRating:   float64(t.sum) / float64(t.count),
			ReviewCount: t.count,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AvgRating != entries[j].AvgRating {
			return entries[i].AvgRating > entries[j].AvgRating
		}
		return entries[i].ReviewCount > entries[j].ReviewCount
	})
	return entries, nil
}

// SubmitRequest files a user's request to add a landlord and returns the
// store-generated id.
func (s *LandlordService) SubmitRequest(ctx context.Context, req *model.LandlordRequest) (int, error) {
	if strings.TrimSpace(req.LandlordName) == "" {
		return 0, ErrLandlordNameRequired
	}
	return s.requests.Insert(ctx, req)
}

func (s *LandlordService) Requests(ctx context.Context) ([]model.LandlordRequest, error) {
	return s.requests.All(ctx)
}

// ApproveRequest promotes a pending request into a real landlord record and
// removes the request. Nested property or unit failures surface as an
// advisory warning, not an error.
func (s *LandlordService) ApproveRequest(ctx context.Context, id int) (string, error) {
	req, err := s.requests.ByID(ctx, id)
	if err != nil {
		return "", err
	}

	landlord := &model.Landlord{
		LandlordID: uuid.NewString(),
		Name:       req.LandlordName,
		Contact: model.Contact{
			Email: req.LandlordEmail,
			Phone: req.LandlordPhone,
		},
		Properties: req.Properties,
	}
	for i := range landlord.Properties {
		if landlord.Properties[i].PropertyID == "" {
			landlord.Properties[i].PropertyID = uuid.NewString()
		}
	}

	warning, err := s.landlords.Insert(ctx, landlord)
	if err != nil {
		return "", err
	}

	// The landlord exists now, so a stuck request row is advisory only.
	if err := s.requests.Delete(ctx, id); err != nil {
		slog.WarnContext(ctx, "approved request not removed", "id", id, "error", err)
		if warning != "" {
			warning += "; "
		}
		warning += "request record could not be removed"
	}
	return warning, nil
}

func (s *LandlordService) DenyRequest(ctx context.Context, id int) error {
	return s.requests.Delete(ctx, id)
}
