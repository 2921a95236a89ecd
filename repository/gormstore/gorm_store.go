package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"campus-chat/entity"
	"campus-chat/repository"
)

// Store persists records in a relational database through gorm.
type Store struct {
	db       *gorm.DB
	users    Repository[entity.User]
	admins   Repository[entity.Admin]
	messages Repository[entity.Message]
	reports  Repository[entity.Report]
	settings Repository[entity.Settings]
}

var _ repository.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Config is the gorm setup the store's table names and error mapping rely on.
func Config() *gorm.Config {
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
		TranslateError: true,
	}
}

// Models lists every table managed by the store, for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&entity.User{},
		&entity.Admin{},
		&entity.Message{},
		&entity.Report{},
		&entity.Settings{},
		&entity.ScheduledDeletion{},
	}
}

func (s *Store) Close() error {
	conn, err := s.db.DB()
	if err != nil {
		return err
	}
	return conn.Close()
}

func (s *Store) CreateUser(ctx context.Context, user *entity.User) error {
	return s.users.Save(ctx, s.db, user)
}

func (s *Store) UpdateUser(ctx context.Context, user *entity.User) error {
	result := s.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", user.ID).Select("*").Omit("id", "created_at").Updates(user)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := s.users.FindById(ctx, s.db, &user, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ExistsUserByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ? OR phone = ?", email, phone).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListUsers(ctx context.Context, filter repository.UserFilter) ([]entity.User, error) {
	query := s.db.WithContext(ctx).Model(&entity.User{})
	if filter.Faculty != "" {
		query = query.Where("faculty = ?", filter.Faculty)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.ExcludeID != "" {
		query = query.Where("id <> ?", filter.ExcludeID)
	}
	var users []entity.User
	if err := query.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	return s.admins.Save(ctx, s.db, admin)
}

func (s *Store) FindAdminByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	var admin entity.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).Take(&admin).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]entity.Admin, error) {
	var admins []entity.Admin
	if err := s.admins.FindAll(ctx, s.db, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *Store) DeleteAdmin(ctx context.Context, id string) error {
	return s.admins.DeleteById(ctx, s.db, id)
}

func (s *Store) CreateMessage(ctx context.Context, message *entity.Message) error {
	return s.messages.Save(ctx, s.db, message)
}

func (s *Store) FindMessageByID(ctx context.Context, id string) (*entity.Message, error) {
	var message entity.Message
	if err := s.messages.FindById(ctx, s.db, &message, id); err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	return s.messages.DeleteById(ctx, s.db, id)
}

func (s *Store) RecentMessages(ctx context.Context, room string, limit int) ([]entity.Message, error) {
	var messages []entity.Message
	err := s.db.WithContext(ctx).
		Where("room = ?", room).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return repository.ReverseMessages(messages), nil
}

func (s *Store) CreateReport(ctx context.Context, report *entity.Report) error {
	return s.reports.Save(ctx, s.db, report)
}

func (s *Store) CountReportsByUser(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		ReportedUserID string
		Total          int64
	}
	err := s.db.WithContext(ctx).
		Model(&entity.Report{}).
		Select("reported_user_id, count(*) AS total").
		Group("reported_user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ReportedUserID] = row.Total
	}
	return counts, nil
}

func (s *Store) GetSettings(ctx context.Context) (*entity.Settings, error) {
	var settings entity.Settings
	if err := s.settings.FindById(ctx, s.db, &settings, entity.SettingsID); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings *entity.Settings) error {
	if settings.ID == "" {
		settings.ID = entity.SettingsID
	}
	return s.settings.Update(ctx, s.db, settings)
}

func (s *Store) ScheduleDeletion(ctx context.Context, deletion *entity.ScheduledDeletion) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(deletion).Error
}

func (s *Store) DueDeletions(ctx context.Context, now time.Time, limit int) ([]entity.ScheduledDeletion, error) {
	var due []entity.ScheduledDeletion
	query := s.db.WithContext(ctx).Where("fire_at <= ?", now).Order("fire_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&due).Error; err != nil {
		return nil, err
	}
	return due, nil
}

func (s *Store) CancelDeletion(ctx context.Context, messageID string) error {
	err := s.db.WithContext(ctx).Where("message_id = ?", messageID).Delete(&entity.ScheduledDeletion{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
