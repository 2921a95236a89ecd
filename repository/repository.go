package repository

import (
	"context"
	"errors"
	"time"

	"campus-chat/entity"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// HistoryLimit is how many messages a room replays to a client that joins it.
const HistoryLimit = 50

type UserFilter struct {
	Faculty    string
	ActiveOnly bool
	ExcludeID  string
}

func (f UserFilter) Match(user *entity.User) bool {
	if f.Faculty != "" && user.Faculty != f.Faculty {
		return false
	}
	if f.ActiveOnly && !user.IsActive {
		return false
	}
	return f.ExcludeID == "" || user.ID != f.ExcludeID
}

type UserRepository interface {
	// CreateUser returns ErrDuplicate when the e-mail or phone is taken.
	CreateUser(ctx context.Context, user *entity.User) error
	UpdateUser(ctx context.Context, user *entity.User) error
	FindUserByID(ctx context.Context, id string) (*entity.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsUserByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]entity.User, error)
}

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *entity.Admin) error
	FindAdminByUsername(ctx context.Context, username string) (*entity.Admin, error)
	ListAdmins(ctx context.Context) ([]entity.Admin, error)
	DeleteAdmin(ctx context.Context, id string) error
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, message *entity.Message) error
	FindMessageByID(ctx context.Context, id string) (*entity.Message, error)
	// DeleteMessage is idempotent: removing an absent id is not an error.
	DeleteMessage(ctx context.Context, id string) error
	// RecentMessages returns at most limit of the newest messages of a room,
	// oldest first.
	RecentMessages(ctx context.Context, room string, limit int) ([]entity.Message, error)
}

type ReportRepository interface {
	CreateReport(ctx context.Context, report *entity.Report) error
	// CountReportsByUser aggregates the whole report log by reported user id.
	CountReportsByUser(ctx context.Context) (map[string]int64, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*entity.Settings, error)
	SaveSettings(ctx context.Context, settings *entity.Settings) error
}

type DeletionRepository interface {
	ScheduleDeletion(ctx context.Context, deletion *entity.ScheduledDeletion) error
	DueDeletions(ctx context.Context, now time.Time, limit int) ([]entity.ScheduledDeletion, error)
	CancelDeletion(ctx context.Context, messageID string) error
}

// Store is the storage backend of the application.
type Store interface {
	UserRepository
	AdminRepository
	MessageRepository
	ReportRepository
	SettingsRepository
	DeletionRepository
	Close() error
}

// ReverseMessages flips a newest-first page into chronological order in place.
func ReverseMessages(messages []entity.Message) []entity.Message {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages
}
