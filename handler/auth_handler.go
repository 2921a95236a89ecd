package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat/dto/req"
	"campus-chat/dto/res"
	"campus-chat/enum"
	"campus-chat/middleware"
	"campus-chat/usecase"
)

type AuthHandler struct {
	usecase.AuthUsecase
	*logrus.Logger
	CookieName string
}

func NewAuthHandler(authUseCase usecase.AuthUsecase, logger *logrus.Logger, cookieName string) *AuthHandler {
	return &AuthHandler{AuthUsecase: authUseCase, Logger: logger, CookieName: cookieName}
}

func (handler *AuthHandler) RegisterUser(ctx *fiber.Ctx) error {
	payload := new(req.RegisterRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	registerResponse, err := handler.AuthUsecase.RegisterUser(ctx.Context(), payload)
	if err != nil {
		handler.Logger.WithError(err).Warnf("Failed to register new user: %v", err)
		return err
	}
	return ok(ctx, "Answer the verification questions to finish registration", registerResponse)
}

func (handler *AuthHandler) VerifyRegister(ctx *fiber.Ctx) error {
	payload := new(req.VerifyRegisterRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	userResponse, err := handler.AuthUsecase.VerifyRegistration(ctx.Context(), payload)
	if err != nil {
		handler.Logger.WithError(err).Warnf("Failed to verify registration: %v", err)
		return err
	}
	return ok(ctx, "Registration completed", userResponse)
}

func (handler *AuthHandler) LoginUser(ctx *fiber.Ctx) error {
	payload := new(req.LoginRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	loginResponse, err := handler.AuthUsecase.LoginUser(ctx.Context(), payload)
	if err != nil {
		handler.Logger.WithError(err).Warnf("Failed to login: %v", err)
		return err
	}
	handler.setSessionCookie(ctx, loginResponse.Token, loginResponse.ExpiresAt)
	return ok(ctx, "Successfully to login", loginResponse)
}

func (handler *AuthHandler) LoginAdmin(ctx *fiber.Ctx) error {
	payload := new(req.AdminLoginRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	loginResponse, err := handler.AuthUsecase.LoginAdmin(ctx.Context(), payload)
	if err != nil {
		handler.Logger.WithError(err).Warnf("Failed to login admin: %v", err)
		return err
	}
	handler.setSessionCookie(ctx, loginResponse.Token, loginResponse.ExpiresAt)
	return ok(ctx, "Successfully to login", loginResponse)
}

func (handler *AuthHandler) CheckSession(ctx *fiber.Ctx) error {
	session, found := middleware.CurrentSession(ctx)
	response := res.SessionResponse{}
	switch {
	case found && session.IsUser():
		response = res.SessionResponse{Authenticated: true, Type: string(enum.SessionRoleUser)}
	case found && session.IsAdmin():
		response = res.SessionResponse{Authenticated: true, Type: string(enum.SessionRoleAdmin), IsSuperAdmin: session.SuperAdmin}
	}
	return ok(ctx, "", response)
}

func (handler *AuthHandler) Logout(ctx *fiber.Ctx) error {
	token, expiresAt := middleware.CurrentToken(ctx)
	if err := handler.AuthUsecase.Logout(ctx.Context(), token, expiresAt); err != nil {
		return err
	}
	ctx.ClearCookie(handler.CookieName)
	return ok[any](ctx, "Logged out", nil)
}

func (handler *AuthHandler) setSessionCookie(ctx *fiber.Ctx, token string, expiresAt time.Time) {
	ctx.Cookie(&fiber.Cookie{
		Name:     handler.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
