package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat/dto/req"
	"campus-chat/dto/res"
	"campus-chat/entity"
	"campus-chat/enum"
	"campus-chat/repository/memory"
	"campus-chat/security"
	"campus-chat/util"
)

type authFixture struct {
	store   *memory.Store
	jwt     *security.JWT
	revoker *security.MemoryTokenRevoker
	uc      AuthUsecase
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	store := memory.NewStore()
	jwt := security.NewJWT(testConfig())
	revoker := security.NewMemoryTokenRevoker()
	uc := NewAuthUsecase(store, store, util.NewValidator(), quietLogger(), jwt, revoker,
		NewChallengeSelector(DefaultQuestionCatalog(), 42), AuthOptions{
			EmailDomain:        "@bsu.edu.az",
			SuperAdminUsername: "root",
			SuperAdminPassword: "root-pass",
		})
	return authFixture{store: store, jwt: jwt, revoker: revoker, uc: uc}
}

func registerRequest() req.RegisterRequest {
	return req.RegisterRequest{
		FullName: "Aysel Məmmədova",
		Email:    "aysel@bsu.edu.az",
		Phone:    "+994501234567",
		Faculty:  "Tarix",
		Degree:   "Bakalavr",
		Course:   2,
		Password: "secret1",
	}
}

func answersFor(questions []res.QuestionResponse, correct int) []req.VerificationAnswer {
	expected := catalogAnswers()
	answers := make([]req.VerificationAnswer, 0, len(questions))
	for i, q := range questions {
		given := "yanlış"
		if i < correct {
			given = expected[q.Question]
		}
		answers = append(answers, req.VerificationAnswer{Question: q.Question, UserAnswer: given})
	}
	return answers
}

func TestRegisterRejectsForeignDomainBeforeAnythingElse(t *testing.T) {
	f := newAuthFixture(t)

	request := req.RegisterRequest{Email: "someone@gmail.com"}
	got, err := f.uc.RegisterUser(context.Background(), &request)

	assert.ErrorIs(t, err, ErrInvalidEmailDomain)
	assert.Empty(t, got.Questions)
}

func TestRegisterIssuesThreeQuestions(t *testing.T) {
	f := newAuthFixture(t)

	request := registerRequest()
	got, err := f.uc.RegisterUser(context.Background(), &request)

	require.NoError(t, err)
	require.Len(t, got.Questions, 3)
	for i, q := range got.Questions {
		assert.Equal(t, i, q.ID)
		assert.Contains(t, catalogAnswers(), q.Question)
	}
}

func TestRegisterRejectsTakenEmailOrPhone(t *testing.T) {
	f := newAuthFixture(t)
	createUser(t, f.store, "Other", "other@bsu.edu.az", "+994501234567")

	request := registerRequest()
	_, err := f.uc.RegisterUser(context.Background(), &request)

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestVerifyRegistration(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	request := registerRequest()
	issued, err := f.uc.RegisterUser(ctx, &request)
	require.NoError(t, err)

	failed := req.VerifyRegisterRequest{RegisterRequest: request, Answers: answersFor(issued.Questions, 1)}
	_, err = f.uc.VerifyRegistration(ctx, &failed)
	assert.ErrorIs(t, err, ErrVerificationFailed)

	_, err = f.store.FindUserByEmail(ctx, request.Email)
	assert.Error(t, err, "no account may exist after a failed verification")

	passed := req.VerifyRegisterRequest{RegisterRequest: request, Answers: answersFor(issued.Questions, 2)}
	created, err := f.uc.VerifyRegistration(ctx, &passed)
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "aysel@bsu.edu.az", created.Email)

	stored, err := f.store.FindUserByEmail(ctx, request.Email)
	require.NoError(t, err)
	assert.NotEqual(t, request.Password, stored.Password)
	assert.True(t, util.ComparePassword(stored.Password, request.Password))

	_, err = f.uc.VerifyRegistration(ctx, &passed)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestVerifyRegistrationRechecksDomain(t *testing.T) {
	f := newAuthFixture(t)
	request := registerRequest()
	request.Email = "aysel@example.com"

	verify := req.VerifyRegisterRequest{RegisterRequest: request}
	_, err := f.uc.VerifyRegistration(context.Background(), &verify)

	assert.ErrorIs(t, err, ErrInvalidEmailDomain)
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user := createUser(t, f.store, "Aysel", "aysel@bsu.edu.az", "+994501111111", withPassword(t, "secret1"))
	createUser(t, f.store, "Blocked", "blocked@bsu.edu.az", "+994502222222", withPassword(t, "secret1"), inactive())

	_, err := f.uc.LoginUser(ctx, &req.LoginRequest{Email: "nobody@bsu.edu.az", Password: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.uc.LoginUser(ctx, &req.LoginRequest{Email: "blocked@bsu.edu.az", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAccountInactive, "inactive accounts are rejected before the password check")

	_, err = f.uc.LoginUser(ctx, &req.LoginRequest{Email: "aysel@bsu.edu.az", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	got, err := f.uc.LoginUser(ctx, &req.LoginRequest{Email: "Aysel@BSU.edu.az", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, user.ID, got.User.ID)
	assert.True(t, got.ExpiresAt.After(time.Now()))

	claims, err := f.jwt.VerifyJwtToken(got.Token)
	require.NoError(t, err)
	assert.Equal(t, security.Session{SubjectID: user.ID, Role: enum.SessionRoleUser}, claims.Session())
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	hash, err := util.HashPassword("sub-pass")
	require.NoError(t, err)
	sub := &entity.Admin{Username: "moderator", Password: hash}
	require.NoError(t, f.store.CreateAdmin(ctx, sub))

	super, err := f.uc.LoginAdmin(ctx, &req.AdminLoginRequest{Username: "root", Password: "root-pass"})
	require.NoError(t, err)
	assert.True(t, super.IsSuperAdmin)
	claims, err := f.jwt.VerifyJwtToken(super.Token)
	require.NoError(t, err)
	assert.True(t, claims.SuperAdmin)
	assert.Equal(t, security.SuperAdminID, claims.Subject)

	got, err := f.uc.LoginAdmin(ctx, &req.AdminLoginRequest{Username: "moderator", Password: "sub-pass"})
	require.NoError(t, err)
	assert.False(t, got.IsSuperAdmin)
	claims, err = f.jwt.VerifyJwtToken(got.Token)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, claims.Subject)
	assert.Equal(t, enum.SessionRoleAdmin, claims.Role)

	_, err = f.uc.LoginAdmin(ctx, &req.AdminLoginRequest{Username: "moderator", Password: "nope"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = f.uc.LoginAdmin(ctx, &req.AdminLoginRequest{Username: "ghost", Password: "nope"})
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.uc.Logout(context.Background(), "token-1", time.Now().Add(time.Hour)))

	revoked, err := f.revoker.IsRevoked(context.Background(), "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.NoError(t, f.uc.Logout(context.Background(), "", time.Time{}))
}
