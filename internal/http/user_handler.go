package httpapi

import (
	"net/http"
	"strings"

	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/service"

	"go.uber.org/zap"
)

type UserHandler struct {
	users  service.UserService
	logger *zap.Logger
}

func NewUserHandler(users service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// ServeCollection handles /api/v1/users (GET list, POST create).
func (h *UserHandler) ServeCollection(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	switch r.Method {
	case http.MethodGet:
		items, err := h.users.ListUsers(r.Context(), session.CompanyID)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to list users"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
	case http.MethodPost:
		var req service.CreateUserRequest
		if err := readBodyJSON(r, &req); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		req.CompanyID = session.CompanyID
		u, err := h.users.CreateUser(r.Context(), req)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(u))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ServeByID handles /api/v1/users/{id} (GET, PUT, DELETE).
func (h *UserHandler) ServeByID(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	userID := strings.TrimPrefix(r.URL.Path, "/api/v1/users/")
	if userID == "" || strings.Contains(userID, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		u, err := h.users.GetUser(r.Context(), session.CompanyID, userID)
		if err != nil {
			if err == repository.ErrUserNotFound {
				writeJSON(w, http.StatusOK, Fail("user not found"))
				return
			}
			writeJSON(w, http.StatusOK, Fail("failed to load user"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(u))
	case http.MethodPut:
		var req service.UpdateUserRequest
		if err := readBodyJSON(r, &req); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		req.CompanyID = session.CompanyID
		req.UserID = userID
		u, err := h.users.UpdateUser(r.Context(), req)
		if err != nil {
			if err == repository.ErrUserNotFound {
				writeJSON(w, http.StatusOK, Fail("user not found"))
				return
			}
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(u))
	case http.MethodDelete:
		if session.UserID == userID {
			writeJSON(w, http.StatusOK, Fail("cannot delete your own account"))
			return
		}
		if err := h.users.DeleteUser(r.Context(), session.CompanyID, userID); err != nil {
			if err == repository.ErrUserNotFound {
				writeJSON(w, http.StatusOK, Fail("user not found"))
				return
			}
			writeJSON(w, http.StatusOK, Fail("failed to delete user"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
