package handler

import (
	"net/http"
	"todo_api/internal/app/service"
	"todo_api/internal/common"
	"todo_api/internal/common/validate"
	"todo_api/internal/logging"
)

type AuthHandler struct {
	authService *service.AuthService
	log         logging.Logger
	dev         bool
}

func NewAuthHandler(authService *service.AuthService, log logging.Logger, dev bool) *AuthHandler {
	return &AuthHandler{authService: authService, log: log, dev: dev}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, common.Envelope{
		Success: true,
		Token:   resp.Token,
		Data:    resp.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.Envelope{
		Success: true,
		Token:   resp.Token,
		Data:    resp.User,
	})
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, users)
}
