package security

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat/config/common"
	"campus-chat/enum"
)

func newTestJWT(secret string, ttl time.Duration) *JWT {
	v := viper.New()
	v.Set("JWT_SECRET", secret)
	v.Set("JWT_TTL", ttl.String())
	return NewJWT(common.NewConfig(v))
}

func TestGenerateAndVerifyToken(t *testing.T) {
	jwt := newTestJWT("test-secret", time.Hour)

	token, expiresAt, err := jwt.GenerateToken(Session{SubjectID: SuperAdminID, Role: enum.SessionRoleAdmin, SuperAdmin: true})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := jwt.VerifyJwtToken(token)
	require.NoError(t, err)
	session := claims.Session()
	assert.Equal(t, SuperAdminID, session.SubjectID)
	assert.True(t, session.IsAdmin())
	assert.False(t, session.IsUser())
	assert.True(t, session.SuperAdmin)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, _, err := newTestJWT("one", time.Hour).GenerateToken(Session{SubjectID: "u1", Role: enum.SessionRoleUser})
	require.NoError(t, err)

	_, err = newTestJWT("two", time.Hour).VerifyJwtToken(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	jwt := newTestJWT("test-secret", -time.Minute)
	token, _, err := jwt.GenerateToken(Session{SubjectID: "u1", Role: enum.SessionRoleUser})
	require.NoError(t, err)

	_, err = jwt.VerifyJwtToken(token)
	assert.Error(t, err)
}

func TestVerifyRejectsEmptySubject(t *testing.T) {
	jwt := newTestJWT("test-secret", time.Hour)
	token, _, err := jwt.GenerateToken(Session{Role: enum.SessionRoleUser})
	require.NoError(t, err)

	_, err = jwt.VerifyJwtToken(token)
	assert.Error(t, err)
}

func TestSessionRoles(t *testing.T) {
	assert.True(t, Session{SubjectID: "u1", Role: enum.SessionRoleUser}.IsUser())
	assert.False(t, Session{Role: enum.SessionRoleUser}.IsUser())
	assert.False(t, Session{SubjectID: "a1", Role: enum.SessionRoleAdmin}.IsUser())
}
