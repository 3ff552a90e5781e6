package handler

import (
	"net/http"

	"github.com/tenantlens/tenantlens/internal/ctxkeys"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"email": user.Email,
		"name":  user.Name,
		"admin": user.Admin,
	})
}
