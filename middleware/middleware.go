package middleware

import (
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"campus-chat/config/common"
	"campus-chat/security"
	"campus-chat/usecase"
)

const (
	localJWT       = "jwt"
	LocalSession   = "session"
	localToken     = "token"
	localExpiresAt = "tokenExpiresAt"
)

type Middleware struct {
	*common.Config
	Revoker security.TokenRevoker
	Limiter *security.FixedWindowLimiter
	Log     *logrus.Logger
}

func NewMiddleware(config *common.Config, revoker security.TokenRevoker, limiter *security.FixedWindowLimiter, logger *logrus.Logger) *Middleware {
	return &Middleware{Config: config, Revoker: revoker, Limiter: limiter, Log: logger}
}

// Authenticate reads the session token from the Authorization header or the
// session cookie. Requests without a valid token continue anonymously; the
// Require* guards decide what needs a session.
func (middleware *Middleware) Authenticate() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: jwtware.HS512, Key: middleware.GetJwtConfig()},
		ContextKey:  localJWT,
		Claims:      &security.SessionClaims{},
		TokenLookup: "header:" + fiber.HeaderAuthorization + ",cookie:" + middleware.GetSessionCookieName(),
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if err != jwtware.ErrJWTMissingOrMalformed {
				middleware.Log.WithError(err).Debug("Ignoring invalid session token")
			}
			return c.Next()
		},
		SuccessHandler: middleware.storeSession,
	})
}

func (middleware *Middleware) storeSession(c *fiber.Ctx) error {
	token, ok := c.Locals(localJWT).(*jwt.Token)
	if !ok {
		return c.Next()
	}
	claims, ok := token.Claims.(*security.SessionClaims)
	if !ok || claims.Subject == "" {
		return c.Next()
	}

	revoked, err := middleware.Revoker.IsRevoked(c.UserContext(), token.Raw)
	if err != nil {
		middleware.Log.WithError(err).Error("Failed to check token revocation")
		return c.Next()
	}
	if revoked {
		return c.Next()
	}

	c.Locals(LocalSession, claims.Session())
	c.Locals(localToken, token.Raw)
	if claims.ExpiresAt != nil {
		c.Locals(localExpiresAt, claims.ExpiresAt.Time)
	}
	return c.Next()
}

func (middleware *Middleware) RequireUser(c *fiber.Ctx) error {
	session, ok := CurrentSession(c)
	if !ok || !session.IsUser() {
		return usecase.ErrLoginRequired
	}
	return c.Next()
}

func (middleware *Middleware) RequireAdmin(c *fiber.Ctx) error {
	session, ok := CurrentSession(c)
	if !ok || !session.IsAdmin() {
		return usecase.ErrAdminRequired
	}
	return c.Next()
}

func (middleware *Middleware) RequireSuperAdmin(c *fiber.Ctx) error {
	session, ok := CurrentSession(c)
	if !ok || !session.IsAdmin() {
		return usecase.ErrAdminRequired
	}
	if !session.SuperAdmin {
		return usecase.ErrSuperAdminRequired
	}
	return c.Next()
}

// LoginThrottle limits login attempts per client IP. Without redis it lets
// everything through.
func (middleware *Middleware) LoginThrottle(c *fiber.Ctx) error {
	if !middleware.Limiter.Allow(c.IP()) {
		middleware.Log.WithField("ip", c.IP()).Warn("Login attempt throttled")
		return usecase.ErrTooManyAttempts
	}
	return c.Next()
}

func CurrentSession(c *fiber.Ctx) (security.Session, bool) {
	session, ok := c.Locals(LocalSession).(security.Session)
	return session, ok
}

// CurrentToken returns the raw token of the request and its expiry.
func CurrentToken(c *fiber.Ctx) (string, time.Time) {
	token, _ := c.Locals(localToken).(string)
	expiresAt, _ := c.Locals(localExpiresAt).(time.Time)
	return token, expiresAt
}
