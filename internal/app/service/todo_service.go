package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
	"todo_api/internal/domain/repository"
	"todo_api/internal/logging"

	"github.com/google/uuid"
)

type TodoService struct {
	todoRepo        repository.TodoRepository
	defaultPageSize int
	maxPageSize     int
	log             logging.Logger
}

func NewTodoService(todoRepo repository.TodoRepository, defaultPageSize, maxPageSize int, log logging.Logger) *TodoService {
	return &TodoService{
		todoRepo:        todoRepo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		log:             log,
	}
}

type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required,min=1,max=1000"`
	Deadline    *string `json:"deadline"`
}

type UpdateTodoRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1,max=1000"`
	Completed   *bool   `json:"completed"`
	Deadline    *string `json:"deadline"`
}

type TodoList struct {
	Items      []model.Todo
	Pagination common.Pagination
}

// List returns the caller's todos, filtered, searched, sorted and paged.
// status "completed" and "pending" restrict on the completed flag; any other
// value applies no restriction. A page past the end yields an empty item set
// with correct totals.
func (s *TodoService) List(ctx context.Context, userID, status, search string, page, limit int) (*TodoList, error) {
	var completed *bool
	switch status {
	case "completed":
		t := true
		completed = &t
	case "pending":
		f := false
		completed = &f
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	filter := repository.TodoFilter{
		UserID:    userID,
		Completed: completed,
		Search:    strings.TrimSpace(search),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	items, total, err := s.todoRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	totalPages := (total + limit - 1) / limit
	return &TodoList{
		Items: items,
		Pagination: common.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}, nil
}

// Create persists a new todo for userID. Todos always start not completed.
func (s *TodoService) Create(ctx context.Context, userID string, req CreateTodoRequest) (*model.Todo, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	todo := &model.Todo{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		Deadline:    deadline,
		UserID:      userID,
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.log.Info(ctx, "todo created", "id", todo.ID, "user", userID)
	return todo, nil
}

func (s *TodoService) Get(ctx context.Context, id, userID string) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// Update applies the fields present in req to the caller's todo.
func (s *TodoService) Update(ctx context.Context, id, userID string, req UpdateTodoRequest) (*model.Todo, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	changes := repository.TodoChanges{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Deadline:    deadline,
	}
	if changes.Empty() {
		return nil, common.ErrEmptyUpdate
	}

	todo, err := s.todoRepo.Update(ctx, id, userID, changes)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.log.Info(ctx, "todo updated", "id", id, "user", userID)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id, userID string) error {
	if err := s.todoRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.log.Info(ctx, "todo deleted", "id", id, "user", userID)
	return nil
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, common.ErrInvalidDeadline
	}
	return &t, nil
}
