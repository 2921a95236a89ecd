package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campus-chat/entity"
	"campus-chat/repository"
)

const (
	usersCollection     = "users"
	adminsCollection    = "admins"
	messagesCollection  = "messages"
	reportsCollection   = "reports"
	settingsCollection  = "settings"
	deletionsCollection = "scheduled_deletions"
)

// Store keeps every record as a MongoDB document.
type Store struct {
	client    *mongo.Client
	users     *mongo.Collection
	admins    *mongo.Collection
	messages  *mongo.Collection
	reports   *mongo.Collection
	settings  *mongo.Collection
	deletions *mongo.Collection
}

var _ repository.Store = (*Store)(nil)

func NewStore(client *mongo.Client, database *mongo.Database) *Store {
	return &Store{
		client:    client,
		users:     database.Collection(usersCollection),
		admins:    database.Collection(adminsCollection),
		messages:  database.Collection(messagesCollection),
		reports:   database.Collection(reportsCollection),
		settings:  database.Collection(settingsCollection),
		deletions: database.Collection(deletionsCollection),
	}
}

// EnsureIndexes creates the unique and lookup indexes the store relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "faculty", Value: 1}}},
		},
		s.admins: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		s.messages: {
			{Keys: bson.D{{Key: "room", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		s.reports: {
			{Keys: bson.D{{Key: "reported_user_id", Value: 1}}},
		},
		s.deletions: {
			{Keys: bson.D{{Key: "fire_at", Value: 1}}},
		},
	}
	for collection, models := range indexes {
		if _, err := collection.Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) CreateUser(ctx context.Context, user *entity.User) error {
	user.Prepare(time.Now().UTC())
	if user.BlockedUsers == nil {
		user.BlockedUsers = []string{}
	}
	_, err := s.users.InsertOne(ctx, user)
	return translate(err)
}

func (s *Store) UpdateUser(ctx context.Context, user *entity.User) error {
	result, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ExistsUserByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
	}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListUsers(ctx context.Context, filter repository.UserFilter) ([]entity.User, error) {
	query := bson.M{}
	if filter.Faculty != "" {
		query["faculty"] = filter.Faculty
	}
	if filter.ActiveOnly {
		query["is_active"] = true
	}
	if filter.ExcludeID != "" {
		query["_id"] = bson.M{"$ne": filter.ExcludeID}
	}
	cursor, err := s.users.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	users := make([]entity.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	admin.Prepare(time.Now().UTC())
	_, err := s.admins.InsertOne(ctx, admin)
	return translate(err)
}

func (s *Store) FindAdminByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	var admin entity.Admin
	if err := s.admins.FindOne(ctx, bson.M{"username": username}).Decode(&admin); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]entity.Admin, error) {
	cursor, err := s.admins.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	admins := make([]entity.Admin, 0)
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *Store) DeleteAdmin(ctx context.Context, id string) error {
	_, err := s.admins.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) CreateMessage(ctx context.Context, message *entity.Message) error {
	message.Prepare(time.Now().UTC())
	_, err := s.messages.InsertOne(ctx, message)
	return translate(err)
}

func (s *Store) FindMessageByID(ctx context.Context, id string) (*entity.Message, error) {
	var message entity.Message
	if err := s.messages.FindOne(ctx, bson.M{"_id": id}).Decode(&message); err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	_, err := s.messages.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) RecentMessages(ctx context.Context, room string, limit int) ([]entity.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.messages.Find(ctx, bson.M{"room": room}, opts)
	if err != nil {
		return nil, err
	}
	messages := make([]entity.Message, 0, limit)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return repository.ReverseMessages(messages), nil
}

func (s *Store) CreateReport(ctx context.Context, report *entity.Report) error {
	report.Prepare(time.Now().UTC())
	_, err := s.reports.InsertOne(ctx, report)
	return translate(err)
}

func (s *Store) CountReportsByUser(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$reported_user_id"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := s.reports.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		UserID string `bson:"_id"`
		Total  int64  `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Total
	}
	return counts, nil
}

func (s *Store) GetSettings(ctx context.Context) (*entity.Settings, error) {
	var settings entity.Settings
	if err := s.settings.FindOne(ctx, bson.M{"_id": entity.SettingsID}).Decode(&settings); err != nil {
		return nil, translate(err)
	}
	return &settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings *entity.Settings) error {
	settings.ID = entity.SettingsID
	_, err := s.settings.ReplaceOne(ctx, bson.M{"_id": settings.ID}, settings, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) ScheduleDeletion(ctx context.Context, deletion *entity.ScheduledDeletion) error {
	_, err := s.deletions.ReplaceOne(ctx, bson.M{"_id": deletion.MessageID}, deletion, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) DueDeletions(ctx context.Context, now time.Time, limit int) ([]entity.ScheduledDeletion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fire_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.deletions.Find(ctx, bson.M{"fire_at": bson.M{"$lte": now}}, opts)
	if err != nil {
		return nil, err
	}
	due := make([]entity.ScheduledDeletion, 0)
	if err := cursor.All(ctx, &due); err != nil {
		return nil, err
	}
	return due, nil
}

func (s *Store) CancelDeletion(ctx context.Context, messageID string) error {
	_, err := s.deletions.DeleteOne(ctx, bson.M{"_id": messageID})
	return err
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}
