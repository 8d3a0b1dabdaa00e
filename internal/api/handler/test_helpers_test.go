package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"todo_api/internal/api/middleware"
	"todo_api/internal/app/service"
	"todo_api/internal/common"
	"todo_api/internal/common/security"
	"todo_api/internal/domain/model"
	"todo_api/internal/domain/repository"
	"todo_api/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeUserRepo struct {
	byEmail map[string]*model.User
	created []*model.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int, searchTerm string) ([]model.User, int, error) {
	return nil, 0, nil
}

type fakeTodoRepo struct {
	listItems []model.Todo
	listTotal int

	findOut   *model.Todo
	updateOut *model.Todo
	updateErr error
	deleteErr error
}

func (f *fakeTodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	return nil
}

func (f *fakeTodoRepo) FindByID(ctx context.Context, id, userID string) (*model.Todo, error) {
	if f.findOut == nil {
		return nil, common.ErrNotFound
	}
	return f.findOut, nil
}

func (f *fakeTodoRepo) List(ctx context.Context, filter repository.TodoFilter) ([]model.Todo, int, error) {
	return f.listItems, f.listTotal, nil
}

func (f *fakeTodoRepo) Update(ctx context.Context, id, userID string, changes repository.TodoChanges) (*model.Todo, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeTodoRepo) Delete(ctx context.Context, id, userID string) error {
	return f.deleteErr
}

// testServer wires real services and handlers over fake repositories, on the
// same route shape the production router uses (minus the rate limiters).
type testServer struct {
	handler http.Handler
	tokens  *security.TokenManager
}

func newTestServer(userRepo repository.UserRepository, todoRepo repository.TodoRepository) *testServer {
	log := testLogger()
	tokens := security.NewTokenManager([]byte("test-secret"), time.Hour)

	authService := service.NewAuthService(userRepo, tokens, 4, log)
	todoService := service.NewTodoService(todoRepo, 10, 100, log)

	authHandler := NewAuthHandler(authService, log, false)
	todoHandler := NewTodoHandler(todoService, log, false)

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))
	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.Register)
			auth.Post("/login", authHandler.Login)
			auth.Get("/users", authHandler.ListUsers)
		})
		api.Route("/todos", func(todos chi.Router) {
			todos.Use(middleware.Authenticator)
			todos.Get("/", todoHandler.List)
			todos.Get("/{id}", todoHandler.Get)
			todos.Post("/", todoHandler.Create)
			todos.Put("/{id}", todoHandler.Update)
			todos.Delete("/{id}", todoHandler.Delete)
		})
	})

	return &testServer{handler: r, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	s.handler.ServeHTTP(resp, req)
	return resp
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	return out
}
