package handler

import (
	"net/http"

	"github.com/tenantlens/tenantlens/internal/ctxkeys"
	"github.com/tenantlens/tenantlens/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LandlordID string `json:"landlord_id"`
		Rating     int    `json:"rating"`
		Title      string `json:"title"`
		Review     string `json:"review"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	review, err := h.reviews.Submit(r.Context(), req.LandlordID, req.Rating, req.Title, req.Review)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ByLandlord(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ForLandlord(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	report, err := h.reviews.Report(r.Context(), r.PathValue("id"), req.Reason, user.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, report)
}
