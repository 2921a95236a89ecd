package usecase

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"campus-chat/dto"
	"campus-chat/dto/req"
	"campus-chat/dto/res"
	"campus-chat/entity"
	"campus-chat/repository"
	"campus-chat/security"
	"campus-chat/util"
)

type AdminUsecaseImpl struct {
	Users    repository.UserRepository
	Admins   repository.AdminRepository
	Reports  repository.ReportRepository
	Settings repository.SettingsRepository
	*validator.Validate
	*logrus.Logger
	Broadcaster Broadcaster
}

func NewAdminUsecase(store repository.Store, validate *validator.Validate, logger *logrus.Logger, broadcaster Broadcaster) AdminUsecase {
	return &AdminUsecaseImpl{
		Users:       store,
		Admins:      store,
		Reports:     store,
		Settings:    store,
		Validate:    validate,
		Logger:      logger,
		Broadcaster: broadcaster,
	}
}

func (uc *AdminUsecaseImpl) EnsureSettings(ctx context.Context) error {
	_, err := uc.Settings.GetSettings(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	defaults := entity.DefaultSettings()
	defaults.UpdatedAt = time.Now().UTC()
	if err := uc.Settings.SaveSettings(ctx, &defaults); err != nil {
		uc.Logger.WithError(err).Error("failed to seed settings")
		return err
	}
	uc.Logger.Info("Seeded default chat settings")
	return nil
}

func (uc *AdminUsecaseImpl) ListUsers(ctx context.Context) ([]res.UserResponse, error) {
	users, err := uc.Users.ListUsers(ctx, repository.UserFilter{})
	if err != nil {
		uc.Logger.WithError(err).Error("failed to list users")
		return nil, err
	}
	responses := make([]res.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses, nil
}

func (uc *AdminUsecaseImpl) ToggleUserStatus(ctx context.Context, request *req.ToggleUserStatusRequest) (res.UserResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.UserResponse{}, err
	}

	user, err := uc.Users.FindUserByID(ctx, request.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return res.UserResponse{}, ErrUserNotFound
	}
	if err != nil {
		return res.UserResponse{}, err
	}

	user.IsActive = *request.IsActive
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		uc.Logger.WithError(err).Errorf("failed to update user status : %v", err)
		return res.UserResponse{}, err
	}

	uc.Logger.WithFields(logrus.Fields{"userId": user.ID, "isActive": user.IsActive}).Info("User status changed")
	return toUserResponse(user), nil
}

func (uc *AdminUsecaseImpl) GetSettings(ctx context.Context) (res.SettingsResponse, error) {
	settings, err := currentSettings(ctx, uc.Settings)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to load settings")
		return res.SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

func (uc *AdminUsecaseImpl) UpdateSettings(ctx context.Context, request *req.UpdateSettingsRequest) (res.SettingsResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.SettingsResponse{}, err
	}

	words := make([]string, 0, len(request.FilterWords))
	for _, word := range request.FilterWords {
		if word = strings.TrimSpace(word); word != "" && !slices.Contains(words, word) {
			words = append(words, word)
		}
	}

	settings := &entity.Settings{
		ID:                   entity.SettingsID,
		Rules:                request.Rules,
		TopicOfTheDay:        request.TopicOfTheDay,
		FilterWords:          words,
		GroupMessageExpiry:   request.GroupMessageExpiry,
		PrivateMessageExpiry: request.PrivateMessageExpiry,
		UpdatedAt:            time.Now().UTC(),
	}
	if err := uc.Settings.SaveSettings(ctx, settings); err != nil {
		uc.Logger.WithError(err).Errorf("failed to save settings : %v", err)
		return res.SettingsResponse{}, err
	}

	uc.Broadcaster.BroadcastAll(dto.EventTopicUpdated, settings.TopicOfTheDay)
	uc.Broadcaster.BroadcastAll(dto.EventRulesUpdated, settings.Rules)

	uc.Logger.Info("Chat settings updated")
	return toSettingsResponse(settings), nil
}

func (uc *AdminUsecaseImpl) ReportedUsers(ctx context.Context) ([]res.ReportedUserResponse, error) {
	counts, err := uc.Reports.CountReportsByUser(ctx)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to count reports")
		return nil, err
	}

	reported := make([]res.ReportedUserResponse, 0)
	for userID, count := range counts {
		if count < ReportThreshold {
			continue
		}
		user, err := uc.Users.FindUserByID(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		reported = append(reported, res.ReportedUserResponse{User: toProfileResponse(user), ReportCount: count})
	}

	sort.Slice(reported, func(i, j int) bool {
		if reported[i].ReportCount != reported[j].ReportCount {
			return reported[i].ReportCount > reported[j].ReportCount
		}
		return reported[i].User.ID < reported[j].User.ID
	})
	return reported, nil
}

func (uc *AdminUsecaseImpl) CreateSubAdmin(ctx context.Context, actor security.Session, request *req.CreateSubAdminRequest) (res.AdminResponse, error) {
	if !actor.SuperAdmin {
		return res.AdminResponse{}, ErrSuperAdminRequired
	}
	if err := uc.Validate.Struct(request); err != nil {
		return res.AdminResponse{}, err
	}

	hashPassword, err := util.HashPassword(request.Password)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to hash password : %v", err)
		return res.AdminResponse{}, err
	}

	admin := &entity.Admin{Username: strings.TrimSpace(request.Username), Password: hashPassword}
	admin.Prepare(time.Now().UTC())
	if err := uc.Admins.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return res.AdminResponse{}, ErrUsernameTaken
		}
		uc.Logger.WithError(err).Errorf("failed to save admin : %v", err)
		return res.AdminResponse{}, err
	}

	uc.Logger.Infof("Sub-admin %s created", admin.Username)
	return toAdminResponse(admin), nil
}

func (uc *AdminUsecaseImpl) ListSubAdmins(ctx context.Context, actor security.Session) ([]res.AdminResponse, error) {
	if !actor.SuperAdmin {
		return nil, ErrSuperAdminRequired
	}
	admins, err := uc.Admins.ListAdmins(ctx)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to list admins")
		return nil, err
	}
	responses := make([]res.AdminResponse, 0, len(admins))
	for i := range admins {
		responses = append(responses, toAdminResponse(&admins[i]))
	}
	return responses, nil
}

func (uc *AdminUsecaseImpl) DeleteSubAdmin(ctx context.Context, actor security.Session, id string) error {
	if !actor.SuperAdmin {
		return ErrSuperAdminRequired
	}
	if err := uc.Admins.DeleteAdmin(ctx, id); err != nil {
		uc.Logger.WithError(err).Errorf("failed to delete admin : %v", err)
		return err
	}
	uc.Logger.Infof("Sub-admin %s deleted", id)
	return nil
}
