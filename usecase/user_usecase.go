package usecase

import (
	"context"

	"campus-chat/dto/req"
	"campus-chat/dto/res"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (res.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, request *req.UpdateProfileRequest, picturePath string) (res.UserResponse, error)
	BlockUser(ctx context.Context, userID string, request *req.TargetUserRequest) error
	UnblockUser(ctx context.Context, userID string, request *req.TargetUserRequest) error
	ReportUser(ctx context.Context, reporterID string, request *req.ReportUserRequest) error
	ListFacultyUsers(ctx context.Context, userID string) ([]res.UserResponse, error)
}
