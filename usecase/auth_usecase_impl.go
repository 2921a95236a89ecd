package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"campus-chat/dto/req"
	"campus-chat/dto/res"
	"campus-chat/entity"
	"campus-chat/enum"
	"campus-chat/repository"
	"campus-chat/security"
	"campus-chat/util"
)

type AuthOptions struct {
	EmailDomain        string
	SuperAdminUsername string
	SuperAdminPassword string
}

type AuthUsecaseImpl struct {
	Users  repository.UserRepository
	Admins repository.AdminRepository
	*validator.Validate
	*logrus.Logger
	*security.JWT
	Revoker  security.TokenRevoker
	Selector *ChallengeSelector
	Options  AuthOptions
}

func NewAuthUsecase(users repository.UserRepository, admins repository.AdminRepository, validate *validator.Validate, logger *logrus.Logger, JWT *security.JWT, revoker security.TokenRevoker, selector *ChallengeSelector, options AuthOptions) AuthUsecase {
	return &AuthUsecaseImpl{
		Users:    users,
		Admins:   admins,
		Validate: validate,
		Logger:   logger,
		JWT:      JWT,
		Revoker:  revoker,
		Selector: selector,
		Options:  options,
	}
}

func (uc *AuthUsecaseImpl) RegisterUser(ctx context.Context, request *req.RegisterRequest) (res.RegisterResponse, error) {
	// the domain check comes first so no question leaks to outsiders
	if !uc.hasInstitutionalDomain(request.Email) {
		return res.RegisterResponse{}, ErrInvalidEmailDomain
	}
	if err := uc.Validate.Struct(request); err != nil {
		uc.Logger.WithError(err).Warn("invalid register request")
		return res.RegisterResponse{}, err
	}

	exists, err := uc.Users.ExistsUserByEmailOrPhone(ctx, normalizeEmail(request.Email), request.Phone)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to check existing user : %v", err)
		return res.RegisterResponse{}, err
	}
	if exists {
		return res.RegisterResponse{}, ErrAlreadyRegistered
	}

	challenges := uc.Selector.Issue()
	questions := make([]res.QuestionResponse, 0, len(challenges))
	for _, challenge := range challenges {
		questions = append(questions, res.QuestionResponse{ID: challenge.ID, Question: challenge.Question})
	}
	return res.RegisterResponse{Questions: questions}, nil
}

func (uc *AuthUsecaseImpl) VerifyRegistration(ctx context.Context, request *req.VerifyRegisterRequest) (res.UserResponse, error) {
	if !uc.hasInstitutionalDomain(request.Email) {
		return res.UserResponse{}, ErrInvalidEmailDomain
	}
	if err := uc.Validate.Struct(request); err != nil {
		uc.Logger.WithError(err).Warn("invalid verify register request")
		return res.UserResponse{}, err
	}

	correct, ok := uc.Selector.Grade(request.Answers)
	if !ok {
		uc.Logger.WithField("correct", correct).Info("registration verification failed")
		return res.UserResponse{}, ErrVerificationFailed
	}

	email := normalizeEmail(request.Email)
	exists, err := uc.Users.ExistsUserByEmailOrPhone(ctx, email, request.Phone)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to check existing user : %v", err)
		return res.UserResponse{}, err
	}
	if exists {
		return res.UserResponse{}, ErrAlreadyRegistered
	}

	hashPassword, err := util.HashPassword(request.Password)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to hash password : %v", err)
		return res.UserResponse{}, err
	}

	newUser := &entity.User{
		FullName:     strings.TrimSpace(request.FullName),
		Email:        email,
		Phone:        request.Phone,
		Faculty:      request.Faculty,
		Degree:       request.Degree,
		Course:       request.Course,
		Password:     hashPassword,
		IsActive:     true,
		BlockedUsers: []string{},
	}
	newUser.Prepare(time.Now().UTC())

	// a single insert: the account either exists completely or not at all
	if err := uc.Users.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return res.UserResponse{}, ErrAlreadyRegistered
		}
		uc.Logger.WithError(err).Errorf("failed to save user : %v", err)
		return res.UserResponse{}, err
	}

	uc.Logger.Infof("Success register user with id: %s", newUser.ID)
	return toUserResponse(newUser), nil
}

func (uc *AuthUsecaseImpl) LoginUser(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.LoginResponse{}, err
	}

	user, err := uc.Users.FindUserByEmail(ctx, normalizeEmail(request.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return res.LoginResponse{}, ErrUserNotFound
	}
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to find user by email = %v", err)
		return res.LoginResponse{}, err
	}
	if !user.IsActive {
		return res.LoginResponse{}, ErrAccountInactive
	}
	if !util.ComparePassword(user.Password, request.Password) {
		return res.LoginResponse{}, ErrWrongPassword
	}

	token, expiresAt, err := uc.JWT.GenerateToken(security.Session{SubjectID: user.ID, Role: enum.SessionRoleUser})
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to generate token = %v", err)
		return res.LoginResponse{}, err
	}
	profile := toUserResponse(user)
	return res.LoginResponse{Token: token, ExpiresAt: expiresAt, User: &profile}, nil
}

func (uc *AuthUsecaseImpl) LoginAdmin(ctx context.Context, request *req.AdminLoginRequest) (res.LoginResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.LoginResponse{}, err
	}

	if uc.isSuperAdmin(request.Username, request.Password) {
		session := security.Session{SubjectID: security.SuperAdminID, Role: enum.SessionRoleAdmin, SuperAdmin: true}
		return uc.adminToken(session)
	}

	admin, err := uc.Admins.FindAdminByUsername(ctx, request.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return res.LoginResponse{}, ErrAdminNotFound
	}
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to find admin = %v", err)
		return res.LoginResponse{}, err
	}
	if !util.ComparePassword(admin.Password, request.Password) {
		return res.LoginResponse{}, ErrWrongPassword
	}
	return uc.adminToken(security.Session{SubjectID: admin.ID, Role: enum.SessionRoleAdmin})
}

func (uc *AuthUsecaseImpl) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return nil
	}
	if err := uc.Revoker.Revoke(ctx, token, expiresAt); err != nil {
		uc.Logger.WithError(err).Error("failed to revoke token")
		return err
	}
	return nil
}

func (uc *AuthUsecaseImpl) adminToken(session security.Session) (res.LoginResponse, error) {
	token, expiresAt, err := uc.JWT.GenerateToken(session)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to generate token = %v", err)
		return res.LoginResponse{}, err
	}
	return res.LoginResponse{Token: token, ExpiresAt: expiresAt, IsSuperAdmin: session.SuperAdmin}, nil
}

func (uc *AuthUsecaseImpl) isSuperAdmin(username, password string) bool {
	if uc.Options.SuperAdminUsername == "" || uc.Options.SuperAdminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.Options.SuperAdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.Options.SuperAdminPassword)) == 1
	return userOK && passOK
}

func (uc *AuthUsecaseImpl) hasInstitutionalDomain(email string) bool {
	domain := strings.ToLower(uc.Options.EmailDomain)
	email = normalizeEmail(email)
	return domain != "" && strings.HasSuffix(email, domain) && len(email) > len(domain)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
