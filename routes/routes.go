package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"campus-chat/handler"
	"campus-chat/middleware"
	"campus-chat/usecase"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.AuthHandler
	*handler.UserHandler
	*handler.AdminHandler
	UploadDir    string
	UploadPrefix string
}

func (rc *ConfigRoute) GetRoute() {
	rc.App.Use(rc.Middleware.Authenticate())
	rc.GetPublicRoute()
	rc.GetUserRoute()
	rc.GetAdminRoute()
	rc.App.Static(rc.UploadPrefix, rc.UploadDir)
}

func (rc *ConfigRoute) GetPublicRoute() {
	app := rc.App.Group("/api")
	app.Post("/register", rc.AuthHandler.RegisterUser)
	app.Post("/verify-register", rc.AuthHandler.VerifyRegister)
	app.Post("/login", rc.Middleware.LoginThrottle, rc.AuthHandler.LoginUser)
	app.Post("/admin-login", rc.Middleware.LoginThrottle, rc.AuthHandler.LoginAdmin)
	app.Get("/check-session", rc.AuthHandler.CheckSession)
	app.Post("/logout", rc.AuthHandler.Logout)
}

func (rc *ConfigRoute) GetUserRoute() {
	// guards sit on each route: a Use on "/api" would also cover the public routes
	app := rc.App.Group("/api")
	requireUser := rc.Middleware.RequireUser
	app.Get("/user-profile", requireUser, rc.UserHandler.GetProfile)
	app.Post("/update-profile", requireUser, rc.UserHandler.UpdateProfile)
	app.Post("/block-user", requireUser, rc.UserHandler.BlockUser)
	app.Post("/unblock-user", requireUser, rc.UserHandler.UnblockUser)
	app.Post("/report-user", requireUser, rc.UserHandler.ReportUser)
	app.Get("/users-list", requireUser, rc.UserHandler.ListUsers)
}

func (rc *ConfigRoute) GetAdminRoute() {
	app := rc.App.Group("/api/admin", rc.Middleware.RequireAdmin)
	app.Get("/users", rc.AdminHandler.ListUsers)
	app.Post("/toggle-user-status", rc.AdminHandler.ToggleUserStatus)
	app.Get("/settings", rc.AdminHandler.GetSettings)
	app.Post("/update-settings", rc.AdminHandler.UpdateSettings)
	app.Get("/reported-users", rc.AdminHandler.ReportedUsers)
	app.Delete("/messages/:id", rc.AdminHandler.DeleteMessage)

	app.Post("/create-sub-admin", rc.Middleware.RequireSuperAdmin, rc.AdminHandler.CreateSubAdmin)
	app.Get("/sub-admins", rc.Middleware.RequireSuperAdmin, rc.AdminHandler.ListSubAdmins)
	app.Delete("/sub-admin/:id", rc.Middleware.RequireSuperAdmin, rc.AdminHandler.DeleteSubAdmin)
}

func (rc *ConfigRoute) GetWebSocketRoute(wsHandler *handler.WebSocketHandler) {
	rc.App.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if session, ok := middleware.CurrentSession(c); !ok || !session.IsUser() {
			return usecase.ErrLoginRequired
		}
		c.Locals("allowed", true)
		return c.Next()
	})

	rc.App.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
