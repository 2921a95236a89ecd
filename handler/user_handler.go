package handler

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat/dto/req"
	"campus-chat/middleware"
	"campus-chat/usecase"
	"campus-chat/util"
)

// UploadConfig says where profile pictures go and how large they may be.
type UploadConfig struct {
	Dir       string
	URLPrefix string
	MaxBytes  int64
}

type UserHandler struct {
	usecase.UserUsecase
	*logrus.Logger
	Upload UploadConfig
}

func NewUserHandler(userUsecase usecase.UserUsecase, logger *logrus.Logger, upload UploadConfig) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase, Logger: logger, Upload: upload}
}

func (handler *UserHandler) GetProfile(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)
	userResponse, err := handler.UserUsecase.GetProfile(ctx.Context(), session.SubjectID)
	if err != nil {
		return err
	}
	return ok(ctx, "", userResponse)
}

func (handler *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)

	payload := new(req.UpdateProfileRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}

	picturePath, storedFile := "", ""
	if form, err := ctx.MultipartForm(); err == nil {
		if files := form.File["profilePicture"]; len(files) > 0 {
			picturePath, storedFile, err = handler.saveUpload(ctx, files[0])
			if err != nil {
				return err
			}
		}
	}

	userResponse, err := handler.UserUsecase.UpdateProfile(ctx.Context(), session.SubjectID, payload, picturePath)
	if err != nil {
		handler.discardUpload(storedFile)
		return err
	}
	return ok(ctx, "Profile updated", userResponse)
}

func (handler *UserHandler) BlockUser(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)
	payload := new(req.TargetUserRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	if err := handler.UserUsecase.BlockUser(ctx.Context(), session.SubjectID, payload); err != nil {
		return err
	}
	return ok[any](ctx, "User blocked", nil)
}

func (handler *UserHandler) UnblockUser(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)
	payload := new(req.TargetUserRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	if err := handler.UserUsecase.UnblockUser(ctx.Context(), session.SubjectID, payload); err != nil {
		return err
	}
	return ok[any](ctx, "User unblocked", nil)
}

func (handler *UserHandler) ReportUser(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)
	payload := new(req.ReportUserRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	if err := handler.UserUsecase.ReportUser(ctx.Context(), session.SubjectID, payload); err != nil {
		return err
	}
	return ok[any](ctx, "Report submitted", nil)
}

func (handler *UserHandler) ListUsers(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)
	users, err := handler.UserUsecase.ListFacultyUsers(ctx.Context(), session.SubjectID)
	if err != nil {
		return err
	}
	return ok(ctx, "", users)
}

// saveUpload stores file under the upload dir and returns its public URL and
// its path on disk.
func (handler *UserHandler) saveUpload(ctx *fiber.Ctx, file *multipart.FileHeader) (string, string, error) {
	if file.Size > handler.Upload.MaxBytes || !util.IsImageFile(file.Filename) {
		return "", "", usecase.ErrInvalidUpload
	}
	if err := os.MkdirAll(handler.Upload.Dir, 0o755); err != nil {
		return "", "", err
	}

	name := util.UploadFileName(file.Filename, time.Now())
	stored := filepath.Join(handler.Upload.Dir, name)
	if err := ctx.SaveFile(file, stored); err != nil {
		handler.Logger.WithError(err).Error("Failed to store profile picture")
		return "", "", err
	}
	return handler.Upload.URLPrefix + "/" + name, stored, nil
}

func (handler *UserHandler) discardUpload(stored string) {
	if stored == "" {
		return
	}
	if err := os.Remove(stored); err != nil && !os.IsNotExist(err) {
		handler.Logger.WithError(err).Warnf("Failed to remove rejected upload %s", stored)
	}
}
