package handler

import (
	"net/http"

	"github.com/tenantlens/tenantlens/internal/ctxkeys"
	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/service"
)

type LandlordHandler struct {
	landlords *service.LandlordService
}

func NewLandlordHandler(landlords *service.LandlordService) *LandlordHandler {
	return &LandlordHandler{landlords: landlords}
}

func (h *LandlordHandler) List(w http.ResponseWriter, r *http.Request) {
	landlords, err := h.landlords.All(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, landlords)
}

func (h *LandlordHandler) Search(w http.ResponseWriter, r *http.Request) {
	landlords, err := h.landlords.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, landlords)
}

func (h *LandlordHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.landlords.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *LandlordHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.landlords.Leaderboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// SubmitRequest files a request to add a landlord. The requester's identity
// comes from the session, not the body.
func (h *LandlordHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LandlordName  string           `json:"landlord_name"`
		LandlordEmail string           `json:"landlord_email"`
		LandlordPhone string           `json:"landlord_phone"`
		Details       string           `json:"details"`
		Properties    []model.Property `json:"properties"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	request := &model.LandlordRequest{
		LandlordName:  req.LandlordName,
		LandlordEmail: req.LandlordEmail,
		LandlordPhone: req.LandlordPhone,
		UserName:      user.Name,
		UserEmail:     user.Email,
		Details:       req.Details,
		Properties:    req.Properties,
	}

	id, err := h.landlords.SubmitRequest(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "landlord request submitted",
	})
}
