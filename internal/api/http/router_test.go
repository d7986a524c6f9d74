package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/club-service/internal/api/http/handlers"
	"github.com/spec-kit/club-service/internal/config"
	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/service"
	"github.com/spec-kit/club-service/internal/storage"
)

// In-memory fakes so the full HTTP surface can be exercised without
// Postgres or Redis.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) FindCollision(_ context.Context, email, idCard string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return "email", nil
		}
		if user.IDCard == idCard {
			return "idCard", nil
		}
	}
	return "", nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id int64, update repository.UserProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.Record5K != nil {
		user.Record5K = update.Record5K
	}
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*domain.MembershipRequest
	users    *fakeUserRepo
}

func newFakeRequestRepo(users *fakeUserRepo) *fakeRequestRepo {
	return &fakeRequestRepo{nextID: 1, requests: map[int64]*domain.MembershipRequest{}, users: users}
}

func (r *fakeRequestRepo) CreateWithUser(_ context.Context, user *domain.User, request *domain.MembershipRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users.mu.Lock()
	user.ID = r.users.nextID
	r.users.nextID++
	stored := *user
	r.users.users[user.ID] = &stored
	r.users.mu.Unlock()

	request.ID = r.nextID
	r.nextID++
	request.UserID = user.ID
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.MembershipRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) Approve(_ context.Context, requestID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return pgx.ErrNoRows
	}
	r.users.mu.Lock()
	user, ok := r.users.users[userID]
	r.users.mu.Unlock()
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsMember = true
	request.Status = domain.RequestStatusApproved
	return nil
}

func (r *fakeRequestRepo) Reject(_ context.Context, requestID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return pgx.ErrNoRows
	}
	request.Status = domain.RequestStatusRejected
	return nil
}

func (r *fakeRequestRepo) ListPending(_ context.Context) ([]domain.PendingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []domain.PendingRequest
	for _, request := range r.requests {
		if request.Status != domain.RequestStatusPending {
			continue
		}
		r.users.mu.Lock()
		user := r.users.users[request.UserID]
		r.users.mu.Unlock()
		pending = append(pending, domain.PendingRequest{
			RequestID: request.ID,
			Status:    request.Status,
			CreatedAt: request.CreatedAt,
			Applicant: domain.ApplicantSummary{
				FullName: user.FullName,
				Email:    user.Email,
				IDCard:   user.IDCard,
			},
		})
	}
	return pending, nil
}

type memBlobStore struct {
	mu      sync.Mutex
	objects map[string]*storage.Object
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string]*storage.Object{}}
}

func (s *memBlobStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = &storage.Object{Body: data, ContentType: contentType, ETag: "test"}
	return nil
}

func (s *memBlobStore) Get(_ context.Context, key string) (*storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	object, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return object, nil
}

func (s *memBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

type testEnv struct {
	app   *fiber.App
	users *fakeUserRepo
	blobs *memBlobStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserRepo()
	requests := newFakeRequestRepo(users)
	blobs := newMemBlobStore()
	logger := zap.NewNop()

	membershipService := service.NewMembershipService(service.MembershipDependencies{
		UserRepo:      users,
		RequestRepo:   requests,
		BlobStore:     blobs,
		Logger:        logger,
		ProfilePrefix: "profiles",
		BcryptCost:    4,
	})
	authService := service.NewAuthService(config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 30, BcryptCost: 4},
	}, users)

	app := fiber.New()
	RegisterMiddlewares(app, logger, 0)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("club-service", "test", nil, nil),
		Join:    handlers.NewJoinHandler(membershipService, 1<<20),
		Auth:    handlers.NewAuthHandler(authService),
		Posts:   handlers.NewPostsHandler(nil),
		Events:  handlers.NewEventsHandler(nil),
		Gallery: handlers.NewGalleryHandler(nil),
		Admin:   handlers.NewAdminHandler(membershipService),
		Files:   handlers.NewFilesHandler(blobs, 1<<20),
	})

	return &testEnv{app: app, users: users, blobs: blobs}
}

func multipartJoinRequest(t *testing.T, fields map[string]string, photoName string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if photoName != "" {
		part, err := writer.CreateFormFile("photo", photoName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/join", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestJoinApproveLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(multipartJoinRequest(t, map[string]string{
		"fullName": "María Pérez",
		"idCard":   "001-1234567-8",
		"email":    "maria@example.com",
		"password": "secret123",
	}, "cara.jpg"), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var joined struct {
		Message  string  `json:"message"`
		UserID   int64   `json:"userId"`
		PhotoKey *string `json:"photoKey"`
	}
	decodeJSON(t, resp, &joined)
	assert.Equal(t, "Registro completado con éxito", joined.Message)
	require.NotNil(t, joined.PhotoKey)
	assert.True(t, strings.HasPrefix(*joined.PhotoKey, "profiles/"))

	// The applicant is not a member until approval.
	user, err := env.users.GetByID(context.Background(), joined.UserID)
	require.NoError(t, err)
	assert.False(t, user.IsMember)

	// The request shows up in the review queue.
	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pending []struct {
		RequestID int64  `json:"requestId"`
		FullName  string `json:"fullName"`
	}
	decodeJSON(t, resp, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "María Pérez", pending[0].FullName)

	// Approve it.
	decision := bytes.NewBufferString(`{"requestId":1,"action":"approve"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/requests", decision)
	req.Header.Set("Content-Type", "application/json")
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decided struct {
		Message string `json:"message"`
	}
	decodeJSON(t, resp, &decided)
	assert.Equal(t, "Solicitud aprobada con éxito", decided.Message)

	user, err = env.users.GetByID(context.Background(), joined.UserID)
	require.NoError(t, err)
	assert.True(t, user.IsMember)

	// A second decision on the same request conflicts.
	decision = bytes.NewBufferString(`{"requestId":1,"action":"reject"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/admin/requests", decision)
	req.Header.Set("Content-Type", "application/json")
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Login works with the registered credentials.
	login := bytes.NewBufferString(`{"email":"maria@example.com","password":"secret123"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/login", login)
	req.Header.Set("Content-Type", "application/json")
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session struct {
		Email    string `json:"email"`
		IsMember bool   `json:"isMember"`
		Token    string `json:"token"`
	}
	decodeJSON(t, resp, &session)
	assert.Equal(t, "maria@example.com", session.Email)
	assert.True(t, session.IsMember)
	assert.NotEmpty(t, session.Token)
}

func TestJoinMissingRequiredFields(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(multipartJoinRequest(t, map[string]string{
		"fullName": "María Pérez",
		"email":    "maria@example.com",
	}, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJoinDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	fields := map[string]string{
		"fullName": "María Pérez",
		"idCard":   "001-1234567-8",
		"email":    "maria@example.com",
		"password": "secret123",
	}
	resp, err := env.app.Test(multipartJoinRequest(t, fields, ""), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	fields["idCard"] = "002-7654321-9"
	resp, err = env.app.Test(multipartJoinRequest(t, fields, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Error, "email")
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	login := bytes.NewBufferString(`{"email":"nadie@example.com","password":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", login)
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Credenciales inválidas", body.Error)
}

func TestProfileUpdateRequiresUserID(t *testing.T) {
	env := newTestEnv(t)

	update := bytes.NewBufferString(`{"phone":"809-555-0101"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/profile/update", update)
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadAndServeGpx(t *testing.T) {
	env := newTestEnv(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "ruta-del-sol.gpx")
	require.NoError(t, err)
	_, err = part.Write([]byte("<gpx></gpx>"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var uploaded struct {
		Key string `json:"key"`
	}
	decodeJSON(t, resp, &uploaded)
	require.NotEmpty(t, uploaded.Key)
	assert.True(t, strings.HasSuffix(uploaded.Key, "-ruta-del-sol.gpx"))

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/files/"+uploaded.Key, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="ruta-del-sol.gpx"`,
		resp.Header.Get("Content-Disposition"))
}

func TestUploadWithoutFile(t *testing.T) {
	env := newTestEnv(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "x"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var bodyJSON struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &bodyJSON)
	assert.Equal(t, "No file provided", bodyJSON.Error)
}

func TestCreateEventDateValidation(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/events",
		bytes.NewBufferString(`{"title":"Carrera 10K"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "La fecha es obligatoria", body.Error)

	req = httptest.NewRequest(http.MethodPost, "/api/events",
		bytes.NewBufferString(`{"title":"Carrera 10K","date":"31/12/2026"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	decodeJSON(t, resp, &body)
	assert.Equal(t, "Formato de fecha inválido", body.Error)
}

func TestServeMissingFile(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/files/profiles/no-such-key.jpg", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
