package handler

import (
	"net/http"
	"strconv"
	"todo_api/internal/api/middleware"
	"todo_api/internal/app/service"
	"todo_api/internal/common"
	"todo_api/internal/common/validate"
	"todo_api/internal/logging"

	"github.com/go-chi/chi/v5"
)

type TodoHandler struct {
	todoService *service.TodoService
	log         logging.Logger
	dev         bool
}

func NewTodoHandler(todoService *service.TodoService, log logging.Logger, dev bool) *TodoHandler {
	return &TodoHandler{todoService: todoService, log: log, dev: dev}
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.todoService.List(r.Context(), userID, q.Get("status"), q.Get("q"), page, limit)
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

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	todo, err := h.todoService.Create(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	todo, err := h.todoService.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	todo, err := h.todoService.Update(r.Context(), chi.URLParam(r, "id"), userID, req)
	if err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.todoService.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		respondServiceError(w, r, h.log, h.dev, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.Envelope{
		Success: true,
		Message: "Todo deleted",
	})
}
