package service

import (
	"context"
	"sync"

	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/events"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/storage"
)

type mockUserRepo struct {
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindCollisionFunc func(ctx context.Context, email, idCard string) (string, error)
	UpdateProfileFunc func(ctx context.Context, id int64, update repository.UserProfileUpdate) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockUserRepo) FindCollision(ctx context.Context, email, idCard string) (string, error) {
	return m.FindCollisionFunc(ctx, email, idCard)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, update repository.UserProfileUpdate) error {
	return m.UpdateProfileFunc(ctx, id, update)
}

type mockRequestRepo struct {
	CreateWithUserFunc func(ctx context.Context, user *domain.User, request *domain.MembershipRequest) error
	GetByIDFunc        func(ctx context.Context, id int64) (*domain.MembershipRequest, error)
	ApproveFunc        func(ctx context.Context, requestID, userID int64) error
	RejectFunc         func(ctx context.Context, requestID int64) error
	ListPendingFunc    func(ctx context.Context) ([]domain.PendingRequest, error)

	createCalls int
}

func (m *mockRequestRepo) CreateWithUser(ctx context.Context, user *domain.User, request *domain.MembershipRequest) error {
	m.createCalls++
	return m.CreateWithUserFunc(ctx, user, request)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id int64) (*domain.MembershipRequest, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRequestRepo) Approve(ctx context.Context, requestID, userID int64) error {
	return m.ApproveFunc(ctx, requestID, userID)
}

func (m *mockRequestRepo) Reject(ctx context.Context, requestID int64) error {
	return m.RejectFunc(ctx, requestID)
}

func (m *mockRequestRepo) ListPending(ctx context.Context) ([]domain.PendingRequest, error) {
	return m.ListPendingFunc(ctx)
}

type mockPostRepo struct {
	CreateFunc  func(ctx context.Context, post *domain.Post) error
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Post, error)
	ListFunc    func(ctx context.Context) ([]domain.Post, error)
	UpdateFunc  func(ctx context.Context, id int64, update repository.PostUpdate) (*domain.Post, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.CreateFunc(ctx, post)
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	return m.ListFunc(ctx)
}

func (m *mockPostRepo) Update(ctx context.Context, id int64, update repository.PostUpdate) (*domain.Post, error) {
	return m.UpdateFunc(ctx, id, update)
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockEventRepo struct {
	CreateFunc  func(ctx context.Context, event *domain.Event) error
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Event, error)
	ListFunc    func(ctx context.Context) ([]domain.Event, error)
	UpdateFunc  func(ctx context.Context, id int64, update repository.EventUpdate) (*domain.Event, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	return m.CreateFunc(ctx, event)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	return m.ListFunc(ctx)
}

func (m *mockEventRepo) Update(ctx context.Context, id int64, update repository.EventUpdate) (*domain.Event, error) {
	return m.UpdateFunc(ctx, id, update)
}

func (m *mockEventRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockGalleryRepo struct {
	CreateFunc  func(ctx context.Context, item *domain.GalleryItem) error
	GetByIDFunc func(ctx context.Context, id int64) (*domain.GalleryItem, error)
	ListFunc    func(ctx context.Context) ([]domain.GalleryItem, error)
	UpdateFunc  func(ctx context.Context, id int64, update repository.GalleryUpdate) (*domain.GalleryItem, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockGalleryRepo) Create(ctx context.Context, item *domain.GalleryItem) error {
	return m.CreateFunc(ctx, item)
}

func (m *mockGalleryRepo) GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockGalleryRepo) List(ctx context.Context) ([]domain.GalleryItem, error) {
	return m.ListFunc(ctx)
}

func (m *mockGalleryRepo) Update(ctx context.Context, id int64, update repository.GalleryUpdate) (*domain.GalleryItem, error) {
	return m.UpdateFunc(ctx, id, update)
}

func (m *mockGalleryRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

// mockBlobStore records calls; failure modes are opt-in per operation.
type mockBlobStore struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
	objects map[string]*storage.Object

	putErr    error
	getErr    error
	deleteErr error
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{objects: map[string]*storage.Object{}}
}

func (m *mockBlobStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts = append(m.puts, key)
	m.objects[key] = &storage.Object{Body: data, ContentType: contentType}
	return nil
}

func (m *mockBlobStore) Get(_ context.Context, key string) (*storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	object, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return object, nil
}

func (m *mockBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletes = append(m.deletes, key)
	delete(m.objects, key)
	return nil
}

func (m *mockBlobStore) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.deletes...)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
