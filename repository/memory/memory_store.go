package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"campus-chat/entity"
	"campus-chat/repository"
)

// Store keeps every record in-process. Data is lost on restart.
type Store struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	userOrder []string
	admins    []entity.Admin
	messages  []entity.Message
	reports   []entity.Report
	settings  *entity.Settings
	deletions map[string]entity.ScheduledDeletion
}

// Snapshot is the full content of a Store, used by file-backed variants.
type Snapshot struct {
	Users     []entity.User              `json:"users"`
	Admins    []entity.Admin             `json:"admins"`
	Messages  []entity.Message           `json:"messages"`
	Reports   []entity.Report            `json:"reports"`
	Settings  *entity.Settings           `json:"settings,omitempty"`
	Deletions []entity.ScheduledDeletion `json:"deletions"`
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		deletions: make(map[string]entity.ScheduledDeletion),
	}
}

// NewStoreFromSnapshot rebuilds a store from a previously taken snapshot.
func NewStoreFromSnapshot(snapshot Snapshot) *Store {
	s := NewStore()
	s.Restore(snapshot)
	return s
}

// Restore replaces the whole content of the store with snapshot.
func (s *Store) Restore(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]entity.User, len(snapshot.Users))
	s.userOrder = make([]string, 0, len(snapshot.Users))
	for _, user := range snapshot.Users {
		s.users[user.ID] = user.Clone()
		s.userOrder = append(s.userOrder, user.ID)
	}
	s.admins = slices.Clone(snapshot.Admins)
	s.messages = slices.Clone(snapshot.Messages)
	s.reports = slices.Clone(snapshot.Reports)
	s.settings = nil
	if snapshot.Settings != nil {
		settings := cloneSettings(*snapshot.Settings)
		s.settings = &settings
	}
	s.deletions = make(map[string]entity.ScheduledDeletion, len(snapshot.Deletions))
	for _, deletion := range snapshot.Deletions {
		s.deletions[deletion.MessageID] = deletion
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := Snapshot{
		Users:     make([]entity.User, 0, len(s.userOrder)),
		Admins:    slices.Clone(s.admins),
		Messages:  slices.Clone(s.messages),
		Reports:   slices.Clone(s.reports),
		Deletions: make([]entity.ScheduledDeletion, 0, len(s.deletions)),
	}
	for _, id := range s.userOrder {
		snapshot.Users = append(snapshot.Users, s.users[id].Clone())
	}
	if s.settings != nil {
		settings := cloneSettings(*s.settings)
		snapshot.Settings = &settings
	}
	for _, deletion := range s.deletions {
		snapshot.Deletions = append(snapshot.Deletions, deletion)
	}
	sort.Slice(snapshot.Deletions, func(i, j int) bool {
		return snapshot.Deletions[i].FireAt.Before(snapshot.Deletions[j].FireAt)
	})
	return snapshot
}

func (s *Store) Close() error {
	return nil
}

// users

func (s *Store) CreateUser(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return repository.ErrDuplicate
		}
	}
	user.Prepare(time.Now().UTC())
	if _, ok := s.users[user.ID]; ok {
		return repository.ErrDuplicate
	}
	s.users[user.ID] = user.Clone()
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	s.users[user.ID] = user.Clone()
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user = user.Clone()
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if user := s.users[id]; user.Email == email {
			user = user.Clone()
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ExistsUserByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email || user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListUsers(ctx context.Context, filter repository.UserFilter) ([]entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]entity.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		user := s.users[id]
		if filter.Match(&user) {
			users = append(users, user.Clone())
		}
	}
	return users, nil
}

// admins

func (s *Store) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.admins {
		if existing.Username == admin.Username {
			return repository.ErrDuplicate
		}
	}
	admin.Prepare(time.Now().UTC())
	s.admins = append(s.admins, *admin)
	return nil
}

func (s *Store) FindAdminByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, admin := range s.admins {
		if admin.Username == username {
			return &admin, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListAdmins(ctx context.Context) ([]entity.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.admins), nil
}

func (s *Store) DeleteAdmin(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins = slices.DeleteFunc(s.admins, func(admin entity.Admin) bool {
		return admin.ID == id
	})
	return nil
}

// messages

func (s *Store) CreateMessage(ctx context.Context, message *entity.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message.Prepare(time.Now().UTC())
	s.messages = append(s.messages, *message)
	return nil
}

func (s *Store) FindMessageByID(ctx context.Context, id string) (*entity.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, message := range s.messages {
		if message.ID == id {
			return &message, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = slices.DeleteFunc(s.messages, func(message entity.Message) bool {
		return message.ID == id
	})
	return nil
}

func (s *Store) RecentMessages(ctx context.Context, room string, limit int) ([]entity.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recent := make([]entity.Message, 0, limit)
	// walk from the newest end so the page is newest-first, then flip it
	for i := len(s.messages) - 1; i >= 0 && len(recent) < limit; i-- {
		if s.messages[i].Room == room {
			recent = append(recent, s.messages[i])
		}
	}
	return repository.ReverseMessages(recent), nil
}

// reports

func (s *Store) CreateReport(ctx context.Context, report *entity.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.Prepare(time.Now().UTC())
	s.reports = append(s.reports, *report)
	return nil
}

func (s *Store) CountReportsByUser(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int64)
	for _, report := range s.reports {
		counts[report.ReportedUserID]++
	}
	return counts, nil
}

// settings

func (s *Store) GetSettings(ctx context.Context) (*entity.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil, repository.ErrNotFound
	}
	settings := cloneSettings(*s.settings)
	return &settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings *entity.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := cloneSettings(*settings)
	s.settings = &saved
	return nil
}

// scheduled deletions

func (s *Store) ScheduleDeletion(ctx context.Context, deletion *entity.ScheduledDeletion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletions[deletion.MessageID] = *deletion
	return nil
}

func (s *Store) DueDeletions(ctx context.Context, now time.Time, limit int) ([]entity.ScheduledDeletion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	due := make([]entity.ScheduledDeletion, 0)
	for _, deletion := range s.deletions {
		if !deletion.FireAt.After(now) {
			due = append(due, deletion)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].FireAt.Before(due[j].FireAt)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *Store) CancelDeletion(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deletions, messageID)
	return nil
}

func cloneSettings(settings entity.Settings) entity.Settings {
	settings.FilterWords = slices.Clone(settings.FilterWords)
	return settings
}
