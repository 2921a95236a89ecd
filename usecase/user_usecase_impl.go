package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"campus-chat/config/logger"
	"campus-chat/dto/req"
	"campus-chat/dto/res"
	"campus-chat/entity"
	"campus-chat/repository"
)

type UserUsecaseImpl struct {
	Users   repository.UserRepository
	Reports repository.ReportRepository
	*validator.Validate
	Log *logger.AppLogger
}

func NewUserUsecase(users repository.UserRepository, reports repository.ReportRepository, validate *validator.Validate, log *logger.AppLogger) UserUsecase {
	return &UserUsecaseImpl{Users: users, Reports: reports, Validate: validate, Log: log}
}

func (uc *UserUsecaseImpl) GetProfile(ctx context.Context, userID string) (res.UserResponse, error) {
	uc.Log.Http.Trace.Trace().Str("userId", userID).Msg("Finding user by ID")

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return res.UserResponse{}, err
	}

	uc.Log.Http.Info.Info().
		Str("userId", user.ID).
		Str("email", user.Email).
		Msg("Successfully retrieved user")
	return toProfileResponse(user), nil
}

func (uc *UserUsecaseImpl) UpdateProfile(ctx context.Context, userID string, request *req.UpdateProfileRequest, picturePath string) (res.UserResponse, error) {
	uc.Log.Http.Info.Info().Str("userId", userID).Msg("UpdateProfile started")

	if err := uc.Validate.Struct(request); err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Msg("Invalid update profile request")
		return res.UserResponse{}, err
	}

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return res.UserResponse{}, err
	}

	user.FullName = strings.TrimSpace(request.FullName)
	user.Faculty = request.Faculty
	user.Degree = request.Degree
	user.Course = request.Course
	if picturePath != "" {
		user.ProfilePicture = picturePath
	}

	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Msg("Failed to update user")
		return res.UserResponse{}, err
	}

	uc.Log.Http.Info.Info().Str("userId", userID).Msg("Successfully updated profile")
	return toProfileResponse(user), nil
}

func (uc *UserUsecaseImpl) BlockUser(ctx context.Context, userID string, request *req.TargetUserRequest) error {
	if err := uc.Validate.Struct(request); err != nil {
		return err
	}
	if request.TargetUserID == userID {
		return ErrCannotBlockSelf
	}

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := uc.findUser(ctx, request.TargetUserID); err != nil {
		return err
	}

	if !user.Block(request.TargetUserID) {
		return nil
	}
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Msg("Failed to save block list")
		return err
	}

	uc.Log.Http.Info.Info().
		Str("userId", userID).
		Str("targetUserId", request.TargetUserID).
		Msg("User blocked")
	return nil
}

func (uc *UserUsecaseImpl) UnblockUser(ctx context.Context, userID string, request *req.TargetUserRequest) error {
	if err := uc.Validate.Struct(request); err != nil {
		return err
	}

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Unblock(request.TargetUserID) {
		return nil
	}
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Msg("Failed to save block list")
		return err
	}

	uc.Log.Http.Info.Info().
		Str("userId", userID).
		Str("targetUserId", request.TargetUserID).
		Msg("User unblocked")
	return nil
}

func (uc *UserUsecaseImpl) ReportUser(ctx context.Context, reporterID string, request *req.ReportUserRequest) error {
	if err := uc.Validate.Struct(request); err != nil {
		return err
	}
	if request.ReportedUserID == reporterID {
		return ErrCannotReportSelf
	}
	if _, err := uc.findUser(ctx, request.ReportedUserID); err != nil {
		return err
	}

	report := &entity.Report{
		ReportedUserID: request.ReportedUserID,
		ReporterUserID: reporterID,
		Reason:         strings.TrimSpace(request.Reason),
	}
	if err := uc.Reports.CreateReport(ctx, report); err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to save report")
		return err
	}

	uc.Log.Http.Info.Info().
		Str("reporterId", reporterID).
		Str("reportedUserId", request.ReportedUserID).
		Msg("User reported")
	return nil
}

func (uc *UserUsecaseImpl) ListFacultyUsers(ctx context.Context, userID string) ([]res.UserResponse, error) {
	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	users, err := uc.Users.ListUsers(ctx, repository.UserFilter{
		Faculty:    user.Faculty,
		ActiveOnly: true,
		ExcludeID:  user.ID,
	})
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to list users")
		return nil, err
	}

	responses := make([]res.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	uc.Log.Http.Info.Info().
		Str("faculty", user.Faculty).
		Int("count", len(responses)).
		Msg("Successfully retrieved faculty users")
	return responses, nil
}

func (uc *UserUsecaseImpl) findUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.Users.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		uc.Log.Http.Warning.Warn().Str("userId", userID).Msg("User not found")
		return nil, ErrUserNotFound
	}
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Msg("Failed to find user")
		return nil, err
	}
	return user, nil
}
