package handler

import (
	"net/http"
	"strconv"
	"todo_api/internal/app/service"
	"todo_api/internal/common"
	"todo_api/internal/logging"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
	log         logging.Logger
	dev         bool
}

func NewUserHandler(userService *service.UserService, log logging.Logger, dev bool) *UserHandler {
	return &UserHandler{userService: userService, log: log, dev: dev}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.userService.List(r.Context(), q.Get("q"), page, limit)
	if err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.Envelope{
		Success:    true,
		Data:       result.Items,
		Pagination: result.Pagination,
	})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, user)
}
