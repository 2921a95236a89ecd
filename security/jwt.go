package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campus-chat/config/common"
	"campus-chat/enum"
)

const (
	tokenAudience = "campus-chat"
	tokenIssuer   = "campus-chat"

	// SuperAdminID is the subject of super-admin sessions.
	SuperAdminID = "super"
)

var SigningMethod = jwt.SigningMethodHS512

// Session identifies who is calling: a student or an admin.
type Session struct {
	SubjectID  string
	Role       enum.SessionRole
	SuperAdmin bool
}

func (s Session) IsUser() bool {
	return s.Role == enum.SessionRoleUser && s.SubjectID != ""
}

func (s Session) IsAdmin() bool {
	return s.Role == enum.SessionRoleAdmin && s.SubjectID != ""
}

type SessionClaims struct {
	Role       enum.SessionRole `json:"role"`
	SuperAdmin bool             `json:"super_admin,omitempty"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) Session() Session {
	return Session{SubjectID: c.Subject, Role: c.Role, SuperAdmin: c.SuperAdmin}
}

type JWT struct {
	config *common.Config
}

func NewJWT(config *common.Config) *JWT {
	return &JWT{config: config}
}

func (j *JWT) SecretKey() []byte {
	return j.config.GetJwtConfig()
}

// GenerateToken signs a session and returns the token with its expiry.
func (j *JWT) GenerateToken(session Session) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.config.GetJwtTTL())
	claims := SessionClaims{
		Role:       session.Role,
		SuperAdmin: session.SuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.SubjectID,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(SigningMethod, claims)
	signed, err := token.SignedString(j.SecretKey())
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *JWT) VerifyJwtToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tokenParse, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.SecretKey(), nil
	}, jwt.WithAudience(tokenAudience), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !tokenParse.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
