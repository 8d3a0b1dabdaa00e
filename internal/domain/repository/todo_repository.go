package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
)

// TodoFilter narrows a list query. UserID is mandatory: every query is
// scoped to the owner, no filter combination can cross user boundaries.
type TodoFilter struct {
	UserID    string
	Completed *bool
	Search    string
	Limit     int
	Offset    int
}

// TodoChanges is a partial update. Nil fields are left untouched.
type TodoChanges struct {
	Title       *string
	Description *string
	Completed   *bool
	Deadline    *time.Time
}

func (c TodoChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Completed == nil && c.Deadline == nil
}

type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	FindByID(ctx context.Context, id, userID string) (*model.Todo, error)
	List(ctx context.Context, filter TodoFilter) ([]model.Todo, int, error)
	Update(ctx context.Context, id, userID string, changes TodoChanges) (*model.Todo, error)
	Delete(ctx context.Context, id, userID string) error
}

type pgTodoRepository struct {
	db *sql.DB
}

func NewPgTodoRepository(db *sql.DB) TodoRepository {
	return &pgTodoRepository{db: db}
}

func (r *pgTodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	query := `INSERT INTO todos (id, title, description, completed, deadline, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Title, todo.Description, todo.Completed, todo.Deadline, todo.UserID,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTodoRepository) FindByID(ctx context.Context, id, userID string) (*model.Todo, error) {
	query := `SELECT id, title, description, completed, deadline, user_id, created_at, updated_at
	          FROM todos WHERE id = $1 AND user_id = $2`
	todo := &model.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.Deadline,
		&todo.UserID, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTodoRepository.FindByID: %w", err)
	}
	return todo, nil
}

// List runs a count and a select over the same filter. The two statements are
// not transactional, so the total can be stale relative to the items under
// concurrent writes.
//
// Ordering is deadline ascending with todos lacking a deadline sorted last,
// then creation time descending as the tie-break.
func (r *pgTodoRepository) List(ctx context.Context, filter TodoFilter) ([]model.Todo, int, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}
	argID := 2

	if filter.Completed != nil {
		conditions = append(conditions, fmt.Sprintf("completed = $%d", argID))
		args = append(args, *filter.Completed)
		argID++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argID, argID+1))
		likeTerm := "%" + filter.Search + "%"
		args = append(args, likeTerm, likeTerm)
		argID += 2
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM todos" + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgTodoRepository.List count: %w", err)
	}

	query := `SELECT id, title, description, completed, deadline, user_id, created_at, updated_at FROM todos` +
		whereClause +
		fmt.Sprintf(" ORDER BY deadline ASC NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgTodoRepository.List: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Deadline,
			&t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("pgTodoRepository.List scan: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgTodoRepository.List rows.Err: %w", err)
	}
	return todos, total, nil
}

// Update applies the non-nil changes in a single statement matched on both
// id and owner. A missing todo and someone else's todo are indistinguishable:
// both come back as ErrNotFound.
func (r *pgTodoRepository) Update(ctx context.Context, id, userID string, changes TodoChanges) (*model.Todo, error) {
	var sets []string
	var args []interface{}
	argID := 1

	if changes.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argID))
		args = append(args, *changes.Title)
		argID++
	}
	if changes.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argID))
		args = append(args, *changes.Description)
		argID++
	}
	if changes.Completed != nil {
		sets = append(sets, fmt.Sprintf("completed = $%d", argID))
		args = append(args, *changes.Completed)
		argID++
	}
	if changes.Deadline != nil {
		sets = append(sets, fmt.Sprintf("deadline = $%d", argID))
		args = append(args, *changes.Deadline)
		argID++
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	query := "UPDATE todos SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", argID, argID+1) +
		" RETURNING id, title, description, completed, deadline, user_id, created_at, updated_at"
	args = append(args, id, userID)

	todo := &model.Todo{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.Deadline,
		&todo.UserID, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTodoRepository.Update: %w", err)
	}
	return todo, nil
}

func (r *pgTodoRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
