package usecase

import (
	"context"

	"campus-chat/dto/req"
	"campus-chat/dto/res"
	"campus-chat/security"
)

// ReportThreshold is the report count at which a user is listed for admins.
const ReportThreshold = 16

type AdminUsecase interface {
	EnsureSettings(ctx context.Context) error
	ListUsers(ctx context.Context) ([]res.UserResponse, error)
	ToggleUserStatus(ctx context.Context, request *req.ToggleUserStatusRequest) (res.UserResponse, error)
	GetSettings(ctx context.Context) (res.SettingsResponse, error)
	UpdateSettings(ctx context.Context, request *req.UpdateSettingsRequest) (res.SettingsResponse, error)
	ReportedUsers(ctx context.Context) ([]res.ReportedUserResponse, error)
	CreateSubAdmin(ctx context.Context, actor security.Session, request *req.CreateSubAdminRequest) (res.AdminResponse, error)
	ListSubAdmins(ctx context.Context, actor security.Session) ([]res.AdminResponse, error)
	DeleteSubAdmin(ctx context.Context, actor security.Session, id string) error
}
