package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/modurim/homepick-api/internal/ai"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/repository"
)

// --- MockRoutineProvider ---

// MockRoutineProvider is a mock implementation of ai.RoutineProvider.
type MockRoutineProvider struct {
	RecommendRoutineFunc func(ctx context.Context, situation string, userID uint) (*ai.RoutineResult, error)
	AnalyzeVoiceFunc     func(ctx context.Context, wavPath string) (*ai.VoiceResult, error)
}

func (m *MockRoutineProvider) RecommendRoutine(ctx context.Context, situation string, userID uint) (*ai.RoutineResult, error) {
	if m.RecommendRoutineFunc != nil {
		return m.RecommendRoutineFunc(ctx, situation, userID)
	}
	return nil, fmt.Errorf("RecommendRoutine not configured")
}

func (m *MockRoutineProvider) AnalyzeVoice(ctx context.Context, wavPath string) (*ai.VoiceResult, error) {
	if m.AnalyzeVoiceFunc != nil {
		return m.AnalyzeVoiceFunc(ctx, wavPath)
	}
	return nil, fmt.Errorf("AnalyzeVoice not configured")
}

// --- MockTranscoder ---

// MockTranscoder is a mock implementation of audio.Transcoder.
type MockTranscoder struct {
	ToWAVFunc func(ctx context.Context, inputPath string) (string, error)
}

func (m *MockTranscoder) ToWAV(ctx context.Context, inputPath string) (string, error) {
	if m.ToWAVFunc != nil {
		return m.ToWAVFunc(ctx, inputPath)
	}
	return "", fmt.Errorf("ToWAV not configured")
}

// --- MockNotifier ---

// MockNotifier records state feed notifications.
type MockNotifier struct {
	mu            sync.Mutex
	Notifications []uint
}

func (m *MockNotifier) NotifyApplianceState(userID uint, appliances []models.Appliance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, userID)
}

// Count returns how many notifications have been recorded.
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Notifications)
}

// --- MockApplianceRepo ---

// MockApplianceRepo is an in-memory mock of repository.ApplianceRepo.
type MockApplianceRepo struct {
	mu         sync.Mutex
	Appliances map[uint]*models.Appliance

	// Error overrides: set these to force specific methods to return errors.
	ListErr       error
	GetErr        error
	SaveErr       error
	UpdateImgErr  error
	StrictErr     error
	PermissiveErr error
}

// NewMockApplianceRepo creates a new MockApplianceRepo with initialized maps.
func NewMockApplianceRepo() *MockApplianceRepo {
	return &MockApplianceRepo{Appliances: make(map[uint]*models.Appliance)}
}

func (m *MockApplianceRepo) ListByUser(userID uint) ([]models.Appliance, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var appliances []models.Appliance
	for _, a := range m.Appliances {
		if a.UserID == userID {
			appliances = append(appliances, *a)
		}
	}
	sort.Slice(appliances, func(i, j int) bool { return appliances[i].ID < appliances[j].ID })
	return appliances, nil
}

func (m *MockApplianceRepo) GetByID(userID, applianceID uint) (*models.Appliance, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.Appliances[applianceID]
	if !ok || a.UserID != userID {
		return nil, repository.NewNotFoundError(fmt.Sprintf("appliance %d not found", applianceID))
	}
	cp := *a
	return &cp, nil
}

func (m *MockApplianceRepo) Save(appliance *models.Appliance) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *appliance
	m.Appliances[appliance.ID] = &cp
	return nil
}

func (m *MockApplianceRepo) UpdateImg(userID, applianceID uint, imgURL string) error {
	if m.UpdateImgErr != nil {
		return m.UpdateImgErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.Appliances[applianceID]
	if !ok || a.UserID != userID {
		return repository.NewNotFoundError(fmt.Sprintf("appliance %d not found", applianceID))
	}
	a.Img = imgURL
	return nil
}

func (m *MockApplianceRepo) ApplyUpdatesStrict(userID uint, updates []models.AppUpdate) ([]models.Appliance, error) {
	if m.StrictErr != nil {
		return nil, m.StrictErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := make([]models.Appliance, 0, len(updates))
	for _, update := range updates {
		a, ok := m.Appliances[update.ApplianceID]
		if !ok || a.UserID != userID {
			return nil, repository.ApplianceNotFoundError{ApplianceID: update.ApplianceID}
		}
		applyUpdate(a, update)
		updated = append(updated, *a)
	}
	return updated, nil
}

func (m *MockApplianceRepo) ApplyUpdatesPermissive(userID uint, updates []models.AppUpdate) error {
	if m.PermissiveErr != nil {
		return m.PermissiveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, update := range updates {
		a, ok := m.Appliances[update.ApplianceID]
		if !ok || a.UserID != userID {
			continue
		}
		applyUpdate(a, update)
	}
	return nil
}

func applyUpdate(a *models.Appliance, update models.AppUpdate) {
	if update.OnOff != nil {
		a.OnOff = *update.OnOff
	}
	if update.State != nil {
		a.State = *update.State
	}
	if update.IsActive != nil {
		a.IsActive = *update.IsActive
	}
	a.UpdatedAt = time.Now()
}

// --- MockRoutineHistoryRepo ---

// MockRoutineHistoryRepo is an in-memory mock of repository.RoutineHistoryRepo.
// Entries are kept in creation order; listings reverse it, matching the
// newest-first database ordering.
type MockRoutineHistoryRepo struct {
	mu      sync.Mutex
	Entries []*models.RoutineHistory
	NextID  uint

	// Error overrides: set these to force specific methods to return errors.
	CreateErr error
	ListErr   error
	GetErr    error
	StampErr  error
	DeleteErr error
}

// NewMockRoutineHistoryRepo creates a new MockRoutineHistoryRepo.
func NewMockRoutineHistoryRepo() *MockRoutineHistoryRepo {
	return &MockRoutineHistoryRepo{NextID: 1}
}

func (m *MockRoutineHistoryRepo) Create(entry *models.RoutineHistory) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = m.NextID
	m.NextID++
	cp := *entry
	m.Entries = append(m.Entries, &cp)
	return nil
}

func (m *MockRoutineHistoryRepo) CountByUser(userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, e := range m.Entries {
		if e.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockRoutineHistoryRepo) ExistsDuplicate(userID uint, situationTxt, routineTxt string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.Entries {
		if e.UserID == userID && e.SituationTxt == situationTxt && e.RoutineTxt == routineTxt {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRoutineHistoryRepo) ListByUser(userID uint, keyword string) ([]models.RoutineHistory, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var histories []models.RoutineHistory
	for i := len(m.Entries) - 1; i >= 0; i-- {
		e := m.Entries[i]
		if e.UserID != userID {
			continue
		}
		if keyword != "" && !strings.Contains(e.SituationTxt, keyword) {
			continue
		}
		histories = append(histories, *e)
	}
	return histories, nil
}

func (m *MockRoutineHistoryRepo) ListIDsByUser(userID uint) ([]uint, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []uint
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].UserID == userID {
			ids = append(ids, m.Entries[i].ID)
		}
	}
	return ids, nil
}

func (m *MockRoutineHistoryRepo) GetByID(userID, historyID uint) (*models.RoutineHistory, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.Entries {
		if e.ID == historyID && e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.NewNotFoundError(fmt.Sprintf("routine history %d not found", historyID))
}

func (m *MockRoutineHistoryRepo) StampExecuted(historyID uint, executedAt time.Time) error {
	if m.StampErr != nil {
		return m.StampErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.Entries {
		if e.ID == historyID {
			e.ExecutedAt = executedAt
			return nil
		}
	}
	return repository.NewNotFoundError(fmt.Sprintf("routine history %d not found", historyID))
}

func (m *MockRoutineHistoryRepo) Delete(historyID uint) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.Entries {
		if e.ID == historyID {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return nil
		}
	}
	return repository.NewNotFoundError(fmt.Sprintf("routine history %d not found", historyID))
}

// --- MockUserRepo ---

// MockUserRepo is an in-memory mock of repository.UserRepo.
type MockUserRepo struct {
	mu     sync.Mutex
	Users  map[string]*models.User
	NextID uint

	CreateErr error
}

// NewMockUserRepo creates a new MockUserRepo with initialized maps.
func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{Users: make(map[string]*models.User), NextID: 1}
}

func (m *MockUserRepo) CreateUser(user *models.User) (*models.User, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = m.NextID
	m.NextID++
	cp := *user
	m.Users[user.Email] = &cp
	return user, nil
}

func (m *MockUserRepo) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[email]
	if !ok {
		return nil, repository.NewNotFoundError("user not found")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) EmailExists(email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.Users[email]
	return ok, nil
}

// --- MockSpeakerRepo ---

// MockSpeakerRepo records connection status changes per user.
type MockSpeakerRepo struct {
	mu       sync.Mutex
	Statuses map[uint]models.ConnStatus
}

// NewMockSpeakerRepo creates a new MockSpeakerRepo with initialized maps.
func NewMockSpeakerRepo() *MockSpeakerRepo {
	return &MockSpeakerRepo{Statuses: make(map[uint]models.ConnStatus)}
}

func (m *MockSpeakerRepo) SetConnStatus(userID uint, status models.ConnStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Statuses[userID] = status
	return nil
}
