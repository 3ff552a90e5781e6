package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/service"
)

type AdminHandler struct {
	admin     *service.AdminService
	landlords *service.LandlordService
}

func NewAdminHandler(admin *service.AdminService, landlords *service.LandlordService) *AdminHandler {
	return &AdminHandler{admin: admin, landlords: landlords}
}

func (h *AdminHandler) LandlordRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.landlords.Requests(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *AdminHandler) ApproveLandlordRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid request id")
		return
	}

	warning, err := h.landlords.ApproveRequest(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := map[string]string{"message": "landlord request approved"}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) DenyLandlordRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid request id")
		return
	}

	if err := h.landlords.DenyRequest(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "landlord request denied"})
}

// Reported lists reported reviews. A storage failure degrades to an empty
// list so the moderation page still renders.
func (h *AdminHandler) Reported(w http.ResponseWriter, r *http.Request) {
	reports, err := h.admin.Reported(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list reported reviews", "error", err)
		reports = []model.ReportedReview{}
	}
	if reports == nil {
		reports = []model.ReportedReview{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *AdminHandler) ApproveReport(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.ApproveReport(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "report approved, review removed"})
}

func (h *AdminHandler) DenyReport(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DenyReport(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "report denied, review kept"})
}
