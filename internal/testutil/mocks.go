// Package testutil provides in-memory mock repositories for service and
// handler tests.
package testutil

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	ByID    map[uuid.UUID]*domain.Account
	ByEmail map[string]*domain.Account
	// GetByEmailErr, when set, is returned by GetByEmail regardless of state
	GetByEmailErr error
	// GetByIDErr, when set, is returned by GetByID regardless of state
	GetByIDErr error
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		ByID:    make(map[uuid.UUID]*domain.Account),
		ByEmail: make(map[string]*domain.Account),
	}
}

// GetByID retrieves an account by id
func (m *MockAccountRepository) GetByID(id uuid.UUID) (*domain.Account, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	if account, ok := m.ByID[id]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetByEmail retrieves an account by email
func (m *MockAccountRepository) GetByEmail(email string) (*domain.Account, error) {
	if m.GetByEmailErr != nil {
		return nil, m.GetByEmailErr
	}
	if account, ok := m.ByEmail[strings.ToLower(strings.TrimSpace(email))]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// Create creates a new account, enforcing email uniqueness like the store
func (m *MockAccountRepository) Create(email, passwordHash string) (*domain.Account, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if _, ok := m.ByEmail[normalized]; ok {
		return nil, domain.ErrEmailTaken
	}
	now := time.Now()
	account := &domain.Account{
		ID:           uuid.New(),
		Email:        normalized,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.ByID[account.ID] = account
	m.ByEmail[normalized] = account
	return account, nil
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.ByID[account.ID] = account
	m.ByEmail[account.Email] = account
}

// MockProfileRepository is a mock implementation of domain.ProfileRepository
type MockProfileRepository struct {
	mu         sync.Mutex
	ByID       map[uuid.UUID]*domain.Profile
	ByUsername map[string]*domain.Profile
	// GetByIDErr, when set, is returned by GetByID regardless of state
	GetByIDErr error
	// CreateFn, when set, replaces the default Create behavior
	CreateFn func(profile *domain.Profile) (*domain.Profile, error)
	// CreateCalls counts Create invocations (provisioning race assertions)
	CreateCalls int
}

// NewMockProfileRepository creates a new MockProfileRepository
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		ByID:       make(map[uuid.UUID]*domain.Profile),
		ByUsername: make(map[string]*domain.Profile),
	}
}

// GetByID retrieves a profile by id
func (m *MockProfileRepository) GetByID(id uuid.UUID) (*domain.Profile, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if profile, ok := m.ByID[id]; ok {
		return profile, nil
	}
	return nil, domain.ErrProfileNotFound
}

// GetByUsername retrieves a profile by username
func (m *MockProfileRepository) GetByUsername(username string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if profile, ok := m.ByUsername[username]; ok {
		return profile, nil
	}
	return nil, domain.ErrProfileNotFound
}

// Create inserts a profile, enforcing both uniqueness constraints like the store
func (m *MockProfileRepository) Create(profile *domain.Profile) (*domain.Profile, error) {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ByID[profile.ID]; ok {
		return nil, domain.ErrProfileExists
	}
	if _, ok := m.ByUsername[profile.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	now := time.Now()
	created := *profile
	created.CreatedAt = now
	created.UpdatedAt = now
	m.ByID[created.ID] = &created
	m.ByUsername[created.Username] = &created
	return &created, nil
}

// Update changes username and full name
func (m *MockProfileRepository) Update(id uuid.UUID, username string, fullName *string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	if other, taken := m.ByUsername[username]; taken && other.ID != id {
		return nil, domain.ErrUsernameTaken
	}
	delete(m.ByUsername, profile.Username)
	profile.Username = username
	profile.FullName = fullName
	profile.UpdatedAt = time.Now()
	m.ByUsername[username] = profile
	return profile, nil
}

// UpdateAvatar sets or clears the avatar path
func (m *MockProfileRepository) UpdateAvatar(id uuid.UUID, avatarPath *string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	profile.AvatarPath = avatarPath
	profile.UpdatedAt = time.Now()
	return profile, nil
}

// AddProfile adds a profile to the mock repository (helper for tests)
func (m *MockProfileRepository) AddProfile(profile *domain.Profile) {
	m.ByID[profile.ID] = profile
	m.ByUsername[profile.Username] = profile
}

// MockIdeaRepository is a mock implementation of domain.IdeaRepository
type MockIdeaRepository struct {
	Ideas map[uuid.UUID]*domain.Idea
	// Usernames resolves owner ids for the username join in list results
	Usernames map[uuid.UUID]string
	// ListErr, when set, is returned by List regardless of state
	ListErr error
	// CreateFn, when set, replaces the default Create behavior
	CreateFn func(idea *domain.Idea) (*domain.Idea, error)
	// CreateCalls counts Create invocations (no-side-effect assertions)
	CreateCalls int

	clock time.Time
}

// NewMockIdeaRepository creates a new MockIdeaRepository
func NewMockIdeaRepository() *MockIdeaRepository {
	return &MockIdeaRepository{
		Ideas:     make(map[uuid.UUID]*domain.Idea),
		Usernames: make(map[uuid.UUID]string),
		clock:     time.Now(),
	}
}

// nextTime hands out strictly increasing timestamps so list ordering is
// deterministic even when ideas are added within the same wall-clock tick.
func (m *MockIdeaRepository) nextTime() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// List filters, orders and pages like the store query
func (m *MockIdeaRepository) List(filter domain.IdeaFilter) ([]*domain.IdeaWithAuthor, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	matched := make([]*domain.Idea, 0, len(m.Ideas))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, idea := range m.Ideas {
		if search != "" &&
			!strings.Contains(strings.ToLower(idea.Title), search) &&
			!strings.Contains(strings.ToLower(idea.Description), search) {
			continue
		}
		if filter.Category != "" && (idea.Category == nil || *idea.Category != filter.Category) {
			continue
		}
		switch filter.TimeBand {
		case domain.TimeBandQuick:
			if idea.TimeRequired > 15 {
				continue
			}
		case domain.TimeBandShort:
			if idea.TimeRequired > 30 {
				continue
			}
		case domain.TimeBandExtended:
			if idea.TimeRequired < 60 {
				continue
			}
		}
		matched = append(matched, idea)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start := filter.Page * domain.IdeaPageSize
	if start < 0 || start >= len(matched) {
		return []*domain.IdeaWithAuthor{}, nil
	}
	end := start + domain.IdeaPageSize
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*domain.IdeaWithAuthor, 0, end-start)
	for _, idea := range matched[start:end] {
		page = append(page, &domain.IdeaWithAuthor{
			Idea:           *idea,
			AuthorUsername: m.Usernames[idea.OwnerID],
		})
	}
	return page, nil
}

// GetByID retrieves an idea with its owner's username
func (m *MockIdeaRepository) GetByID(id uuid.UUID) (*domain.IdeaWithAuthor, error) {
	idea, ok := m.Ideas[id]
	if !ok {
		return nil, domain.ErrIdeaNotFound
	}
	return &domain.IdeaWithAuthor{
		Idea:           *idea,
		AuthorUsername: m.Usernames[idea.OwnerID],
	}, nil
}

// Create inserts a new idea with generated id and timestamps
func (m *MockIdeaRepository) Create(idea *domain.Idea) (*domain.Idea, error) {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(idea)
	}
	created := *idea
	created.ID = uuid.New()
	now := m.nextTime()
	created.CreatedAt = now
	created.UpdatedAt = now
	m.Ideas[created.ID] = &created
	return &created, nil
}

// Update rewrites an idea's mutable fields when the owner matches
func (m *MockIdeaRepository) Update(ownerID uuid.UUID, idea *domain.Idea) (*domain.Idea, error) {
	existing, ok := m.Ideas[idea.ID]
	if !ok || existing.OwnerID != ownerID {
		return nil, domain.ErrIdeaNotFound
	}
	existing.Title = idea.Title
	existing.Category = idea.Category
	existing.Description = idea.Description
	existing.Supplies = idea.Supplies
	existing.TimeRequired = idea.TimeRequired
	existing.UpdatedAt = m.nextTime()
	updated := *existing
	return &updated, nil
}

// Delete removes an idea when the owner matches
func (m *MockIdeaRepository) Delete(ownerID, id uuid.UUID) error {
	existing, ok := m.Ideas[id]
	if !ok || existing.OwnerID != ownerID {
		return domain.ErrIdeaNotFound
	}
	delete(m.Ideas, id)
	return nil
}

// AddIdea adds an idea with generated timestamps (helper for tests)
func (m *MockIdeaRepository) AddIdea(idea *domain.Idea) *domain.Idea {
	if idea.ID == uuid.Nil {
		idea.ID = uuid.New()
	}
	if idea.CreatedAt.IsZero() {
		now := m.nextTime()
		idea.CreatedAt = now
		idea.UpdatedAt = now
	}
	m.Ideas[idea.ID] = idea
	return idea
}

// MockImageRepository is an in-memory mock of storage.ImageRepository
type MockImageRepository struct {
	Objects map[string][]byte
	// UploadErr, when set, is returned by Upload regardless of state
	UploadErr error
}

// NewMockImageRepository creates a new MockImageRepository
func NewMockImageRepository() *MockImageRepository {
	return &MockImageRepository{Objects: make(map[string][]byte)}
}

// Upload stores the object in memory
func (m *MockImageRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf
	return objectPath, nil
}

// Delete removes the object
func (m *MockImageRepository) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a stable fake URL for the object
func (m *MockImageRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://storage.test/" + objectPath + "?signed", nil
}
