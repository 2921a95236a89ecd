package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat/dto/req"
	"campus-chat/middleware"
	"campus-chat/usecase"
)

type AdminHandler struct {
	usecase.AdminUsecase
	Messages usecase.MessageUsecase
	*logrus.Logger
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, messageUsecase usecase.MessageUsecase, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{AdminUsecase: adminUsecase, Messages: messageUsecase, Logger: logger}
}

func (handler *AdminHandler) ListUsers(ctx *fiber.Ctx) error {
	users, err := handler.AdminUsecase.ListUsers(ctx.Context())
	if err != nil {
		return err
	}
	return ok(ctx, "", users)
}

func (handler *AdminHandler) ToggleUserStatus(ctx *fiber.Ctx) error {
	payload := new(req.ToggleUserStatusRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	userResponse, err := handler.AdminUsecase.ToggleUserStatus(ctx.Context(), payload)
	if err != nil {
		return err
	}
	return ok(ctx, "User status updated", userResponse)
}

func (handler *AdminHandler) GetSettings(ctx *fiber.Ctx) error {
	settings, err := handler.AdminUsecase.GetSettings(ctx.Context())
	if err != nil {
		return err
	}
	return ok(ctx, "", settings)
}

func (handler *AdminHandler) UpdateSettings(ctx *fiber.Ctx) error {
	payload := new(req.UpdateSettingsRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	settings, err := handler.AdminUsecase.UpdateSettings(ctx.Context(), payload)
	if err != nil {
		return err
	}
	return ok(ctx, "Settings updated", settings)
}

func (handler *AdminHandler) ReportedUsers(ctx *fiber.Ctx) error {
	reported, err := handler.AdminUsecase.ReportedUsers(ctx.Context())
	if err != nil {
		return err
	}
	return ok(ctx, "", reported)
}

func (handler *AdminHandler) CreateSubAdmin(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)
	payload := new(req.CreateSubAdminRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	admin, err := handler.AdminUsecase.CreateSubAdmin(ctx.Context(), session, payload)
	if err != nil {
		return err
	}
	return ok(ctx, "Sub-admin created", admin)
}

func (handler *AdminHandler) ListSubAdmins(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)
	admins, err := handler.AdminUsecase.ListSubAdmins(ctx.Context(), session)
	if err != nil {
		return err
	}
	return ok(ctx, "", admins)
}

func (handler *AdminHandler) DeleteSubAdmin(ctx *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(ctx)
	if err := handler.AdminUsecase.DeleteSubAdmin(ctx.Context(), session, ctx.Params("id")); err != nil {
		return err
	}
	return ok[any](ctx, "Sub-admin deleted", nil)
}

func (handler *AdminHandler) DeleteMessage(ctx *fiber.Ctx) error {
	if err := handler.Messages.RemoveMessage(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ok[any](ctx, "Message deleted", nil)
}
