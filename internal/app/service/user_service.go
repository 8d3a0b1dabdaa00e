package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
	"todo_api/internal/domain/repository"
)

// UserService backs the read-only user endpoints.
type UserService struct {
	userRepo        repository.UserRepository
	defaultPageSize int
	maxPageSize     int
}

func NewUserService(userRepo repository.UserRepository, defaultPageSize, maxPageSize int) *UserService {
	return &UserService{userRepo: userRepo, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

type UserList struct {
	Items      []model.User
	Pagination common.Pagination
}

// List pages through users, optionally matching username or email against q.
func (s *UserService) List(ctx context.Context, q string, page, limit int) (*UserList, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	users, total, err := s.userRepo.List(ctx, limit, (page-1)*limit, strings.TrimSpace(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].HashedPassword = ""
	}

	return &UserList{
		Items: users,
		Pagination: common.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}
