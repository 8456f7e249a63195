package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"itemboard/internal/api"
	"itemboard/internal/model"
	"itemboard/internal/repository"
	"itemboard/internal/service"
	"itemboard/internal/token"
)

const testSecret = "test-secret-at-least-32-characters"

// fakeUserRepo is an in-memory stand-in for the mongo user repository. It
// counts Create calls so tests can assert validation short-circuits before
// the store is touched.
type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*model.User
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++

	for _, u := range f.users {
		if u.Email == user.Email {
			return "", repository.ErrDuplicate
		}
	}

	user.ID = primitive.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	f.users[user.ID.Hex()] = &stored

	return user.ID.Hex(), nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			user := *u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := *u
	return &user, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, fields map[string]string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "displayName":
			u.DisplayName = v
		case "avatarUrl":
			u.AvatarURL = v
		case "bio":
			u.Bio = v
		}
	}
	u.UpdatedAt = time.Now()
	user := *u
	return &user, nil
}

// fakeItemRepo mirrors the mongo item repository contract, including the
// combined id+owner filter on single-item operations.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*model.Item
	seq   int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]*model.Item{}}
}

func (f *fakeItemRepo) Create(ctx context.Context, item *model.Item) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item.ID = primitive.NewObjectID()
	f.seq++
	item.CreatedAt = time.Unix(int64(f.seq), 0)
	item.UpdatedAt = item.CreatedAt
	stored := *item
	f.items[item.ID.Hex()] = &stored

	return item.ID.Hex(), nil
}

func (f *fakeItemRepo) FindOwned(ctx context.Context, id, ownerID string) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	it, ok := f.items[id]
	if !ok || it.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	item := *it
	return &item, nil
}

func (f *fakeItemRepo) owned(ownerID string) []model.Item {
	owned := []model.Item{}
	for _, it := range f.items {
		if it.OwnerID == ownerID {
			owned = append(owned, *it)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned
}

func (f *fakeItemRepo) ListOwned(ctx context.Context, ownerID string, offset, limit int64) ([]model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	owned := f.owned(ownerID)
	if offset >= int64(len(owned)) {
		return []model.Item{}, nil
	}
	end := offset + limit
	if end > int64(len(owned)) {
		end = int64(len(owned))
	}
	return owned[offset:end], nil
}

func (f *fakeItemRepo) CountOwned(ctx context.Context, ownerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(len(f.owned(ownerID))), nil
}

func (f *fakeItemRepo) UpdateOwned(ctx context.Context, id, ownerID string, fields map[string]string) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	it, ok := f.items[id]
	if !ok || it.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	if title, ok := fields["title"]; ok {
		it.Title = title
	}
	if desc, ok := fields["description"]; ok {
		it.Description = desc
	}
	it.UpdatedAt = time.Now()
	item := *it
	return &item, nil
}

func (f *fakeItemRepo) DeleteOwned(ctx context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	it, ok := f.items[id]
	if !ok || it.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// testApp wires the API routes exactly as cmd/server does, backed by fakes.
type testApp struct {
	app      *fiber.App
	tokens   *token.Service
	userRepo *fakeUserRepo
	itemRepo *fakeItemRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tokens := token.NewService(testSecret, time.Hour)
	userRepo := newFakeUserRepo()
	itemRepo := newFakeItemRepo()

	authHandler := api.NewAuthHandler(service.NewAuthService(userRepo, tokens), tokens)
	userHandler := api.NewUserHandler(service.NewUserService(userRepo), nil)
	itemHandler := api.NewItemHandler(service.NewItemService(itemRepo))

	app := fiber.New(fiber.Config{ErrorHandler: api.ErrorHandler})

	apiRoutes := app.Group("/api")
	apiRoutes.Post("/register", authHandler.Register)
	apiRoutes.Post("/login", authHandler.Login)
	apiRoutes.Post("/logout", authHandler.Logout)

	userRoutes := apiRoutes.Group("/user", api.AuthRequired(tokens))
	userRoutes.Get("/", userHandler.GetProfile)
	userRoutes.Patch("/", userHandler.UpdateProfile)
	userRoutes.Post("/avatar/upload-url", userHandler.GetAvatarUploadURL)

	itemRoutes := apiRoutes.Group("/items", api.AuthRequired(tokens))
	itemRoutes.Get("/", itemHandler.List)
	itemRoutes.Post("/", itemHandler.Create)

	itemRoute := apiRoutes.Group("/item", api.AuthRequired(tokens))
	itemRoute.Get("/:id", itemHandler.Get)
	itemRoute.Patch("/:id", itemHandler.Update)
	itemRoute.Delete("/:id", itemHandler.Delete)

	return &testApp{app: app, tokens: tokens, userRepo: userRepo, itemRepo: itemRepo}
}

// seedUser creates a user directly in the fake store and returns its id and a
// valid bearer token.
func (ta *testApp) seedUser(t *testing.T, email, password string) (string, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	id, err := ta.userRepo.Create(context.Background(), &model.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	})
	require.NoError(t, err)

	signed, err := ta.tokens.Issue(token.Identity{UserID: id, Email: email})
	require.NoError(t, err)

	return id, signed
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (ta *testApp) request(t *testing.T, method, path, bearer string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := ta.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))

	return resp, env
}
