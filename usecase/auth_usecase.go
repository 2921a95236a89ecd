package usecase

import (
	"context"
	"time"

	"campus-chat/dto/req"
	"campus-chat/dto/res"
)

type AuthUsecase interface {
	RegisterUser(ctx context.Context, request *req.RegisterRequest) (res.RegisterResponse, error)
	VerifyRegistration(ctx context.Context, request *req.VerifyRegisterRequest) (res.UserResponse, error)
	LoginUser(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error)
	LoginAdmin(ctx context.Context, request *req.AdminLoginRequest) (res.LoginResponse, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}
