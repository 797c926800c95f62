package core

import (
	"context"
	"sort"
	"sync"
	"time"
)

// FakeStorage is a test-only fake implementing Storage. It keeps accounts
// and tasks in maps and exposes error fields for behavior injection.
type FakeStorage struct {
	mu       sync.RWMutex
	accounts map[int64]*Account
	tasks    map[int64]*Task

	nextAccountID int64
	nextTaskID    int64

	CreateAccountErr error
	GetAccountErr    error
	CreateTaskErr    error
	GetTaskErr       error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		accounts: make(map[int64]*Account),
		tasks:    make(map[int64]*Task),
	}
}

func (f *FakeStorage) CreateAccount(_ context.Context, a *Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateAccountErr != nil {
		return f.CreateAccountErr
	}

	for _, existing := range f.accounts {
		if existing.Username == a.Username {
			return ErrUsernameTaken
		}
		if existing.Email != nil && a.Email != nil && *existing.Email == *a.Email {
			return ErrEmailTaken
		}
	}

	f.nextAccountID++
	a.ID = f.nextAccountID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt

	copied := *a
	f.accounts[a.ID] = &copied
	return nil
}

func (f *FakeStorage) GetAccountByID(_ context.Context, id int64) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetAccountErr != nil {
		return nil, f.GetAccountErr
	}
	if a, ok := f.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, ErrAccountNotFound
}

func (f *FakeStorage) GetAccountByUsername(_ context.Context, username string) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetAccountErr != nil {
		return nil, f.GetAccountErr
	}
	for _, a := range f.accounts {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeStorage) GetAccountByEmail(_ context.Context, email string) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetAccountErr != nil {
		return nil, f.GetAccountErr
	}
	for _, a := range f.accounts {
		if a.Email != nil && *a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeStorage) GetAccountByUsernameOrEmail(_ context.Context, identifier string) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetAccountErr != nil {
		return nil, f.GetAccountErr
	}
	// Username matches win over email matches, like the SQL tiebreak.
	for _, a := range f.accounts {
		if a.Username == identifier {
			copied := *a
			return &copied, nil
		}
	}
	for _, a := range f.accounts {
		if a.Email != nil && *a.Email == identifier {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeStorage) GetAccountByVerificationToken(_ context.Context, token string, now time.Time) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, a := range f.accounts {
		if a.VerificationToken != nil && *a.VerificationToken == token &&
			a.VerificationExpires != nil && a.VerificationExpires.After(now) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeStorage) GetAccountByResetOTP(_ context.Context, email, otp string, now time.Time) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, a := range f.accounts {
		if a.Email != nil && *a.Email == email &&
			a.ResetOTP != nil && *a.ResetOTP == otp &&
			a.ResetExpires != nil && a.ResetExpires.After(now) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeStorage) GetAccountByGoogleIDOrEmail(_ context.Context, googleID, email string) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, a := range f.accounts {
		if a.GoogleID != nil && *a.GoogleID == googleID {
			copied := *a
			return &copied, nil
		}
	}
	for _, a := range f.accounts {
		if a.Email != nil && *a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeStorage) MarkEmailVerified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	a.EmailVerified = true
	a.VerificationToken = nil
	a.VerificationExpires = nil
	a.UpdatedAt = time.Now()
	return nil
}

func (f *FakeStorage) SetVerificationToken(_ context.Context, id int64, token string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	a.VerificationToken = &token
	a.VerificationExpires = &expires
	a.UpdatedAt = time.Now()
	return nil
}

func (f *FakeStorage) SetResetOTP(_ context.Context, id int64, otp string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	a.ResetOTP = &otp
	a.ResetExpires = &expires
	a.UpdatedAt = time.Now()
	return nil
}

func (f *FakeStorage) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	a.PasswordHash = &passwordHash
	a.ResetOTP = nil
	a.ResetExpires = nil
	a.UpdatedAt = time.Now()
	return nil
}

func (f *FakeStorage) LinkGoogle(_ context.Context, id int64, googleID string, avatar *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	if a.GoogleID != nil {
		return nil
	}
	a.GoogleID = &googleID
	a.Provider = ProviderGoogle
	a.EmailVerified = true
	if avatar != nil {
		a.Avatar = avatar
	}
	a.UpdatedAt = time.Now()
	return nil
}

// AccountByID returns the stored record without copying, for test assertions.
func (f *FakeStorage) AccountByID(id int64) *Account {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.accounts[id]
}

// TaskStorage implementation

func (f *FakeStorage) CreateTask(_ context.Context, t *Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}

	f.nextTaskID++
	t.ID = f.nextTaskID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt

	copied := *t
	f.tasks[t.ID] = &copied
	return nil
}

func (f *FakeStorage) GetTaskByID(_ context.Context, id, accountID int64) (*Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetTaskErr != nil {
		return nil, f.GetTaskErr
	}
	t, ok := f.tasks[id]
	if !ok || t.AccountID != accountID {
		return nil, ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *FakeStorage) ListTasks(_ context.Context, accountID int64, filter TaskFilter) ([]*Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var tasks []*Task
	for _, t := range f.tasks {
		if t.AccountID != accountID {
			continue
		}
		if filter.Kategori != nil && (t.Kategori == nil || *t.Kategori != *filter.Kategori) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		copied := *t
		tasks = append(tasks, &copied)
	}
	sortTasks(tasks, filter)
	return tasks, nil
}

// sortTasks mirrors the SQL ordering: deadline sort puts nil deadlines last
// in either direction, everything else falls back to newest-first.
func sortTasks(tasks []*Task, filter TaskFilter) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if filter.SortByDeadline {
			switch {
			case a.TenggatWaktu == nil && b.TenggatWaktu == nil:
				return a.ID > b.ID
			case a.TenggatWaktu == nil:
				return false
			case b.TenggatWaktu == nil:
				return true
			case *a.TenggatWaktu != *b.TenggatWaktu:
				if filter.Ascending {
					return *a.TenggatWaktu < *b.TenggatWaktu
				}
				return *a.TenggatWaktu > *b.TenggatWaktu
			}
		}
		return a.ID > b.ID
	})
}

func (f *FakeStorage) UpdateTask(_ context.Context, t *Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tasks[t.ID]
	if !ok || existing.AccountID != t.AccountID {
		return ErrTaskNotFound
	}
	t.UpdatedAt = time.Now()
	copied := *t
	f.tasks[t.ID] = &copied
	return nil
}

func (f *FakeStorage) DeleteTask(_ context.Context, id, accountID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok || t.AccountID != accountID {
		return ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

// FakeMailer is a test-only fake implementing Mailer. It records every send
// and exposes an error field for behavior injection.
type FakeMailer struct {
	mu      sync.Mutex
	SendErr error

	VerificationSends []FakeMail
	ResetSends        []FakeMail
}

type FakeMail struct {
	To       string
	Username string
	Payload  string
}

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{}
}

func (f *FakeMailer) SendVerificationEmail(_ context.Context, to, username, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.VerificationSends = append(f.VerificationSends, FakeMail{To: to, Username: username, Payload: token})
	return nil
}

func (f *FakeMailer) SendPasswordResetOTP(_ context.Context, to, username, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.ResetSends = append(f.ResetSends, FakeMail{To: to, Username: username, Payload: otp})
	return nil
}

// LastVerification returns the most recent verification send, if any.
func (f *FakeMailer) LastVerification() (FakeMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.VerificationSends) == 0 {
		return FakeMail{}, false
	}
	return f.VerificationSends[len(f.VerificationSends)-1], true
}

// LastReset returns the most recent OTP send, if any.
func (f *FakeMailer) LastReset() (FakeMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.ResetSends) == 0 {
		return FakeMail{}, false
	}
	return f.ResetSends[len(f.ResetSends)-1], true
}

var (
	_ Storage = (*FakeStorage)(nil)
	_ Mailer  = (*FakeMailer)(nil)
)
