package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat/config/logger"
	"campus-chat/dto/res"
	"campus-chat/entity"
	"campus-chat/enum"
	"campus-chat/middleware"
	"campus-chat/repository/memory"
	"campus-chat/security"
	"campus-chat/usecase"
	"campus-chat/util"
)

func newProfileApp(t *testing.T, uploadDir string) (*fiber.App, *memory.Store, *entity.User) {
	store := memory.NewStore()
	user := &entity.User{FullName: "Alice", Email: "alice@bsu.edu.az", Phone: "0501111111", Faculty: "Tarix", IsActive: true}
	require.NoError(t, store.CreateUser(context.Background(), user))

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := usecase.NewUserUsecase(store, store, util.NewValidator(), logger.NewNopLogger())
	h := NewUserHandler(users, log, UploadConfig{Dir: uploadDir, URLPrefix: "/uploads", MaxBytes: 1 << 20})

	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(log)})
	app.Put("/profile", func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalSession, security.Session{SubjectID: user.ID, Role: enum.SessionRoleUser})
		return c.Next()
	}, h.UpdateProfile)
	return app, store, user
}

func profileForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("profilePicture", "a.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func sendProfile(t *testing.T, app *fiber.App, fields map[string]string) res.ErrorResponse {
	t.Helper()
	body, contentType := profileForm(t, fields)
	request := httptest.NewRequest(fiber.MethodPut, "/profile", body)
	request.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := app.Test(request)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out res.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRejectedProfileUpdateLeavesNoUpload(t *testing.T) {
	dir := t.TempDir()
	app, store, user := newProfileApp(t, dir)

	out := sendProfile(t, app, map[string]string{
		"fullName": "Alice Aliyeva", "faculty": "Astrology", "degree": "Bachelor", "course": "2",
	})
	assert.False(t, out.Success)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	stored, err := store.FindUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ProfilePicture)
}

func TestProfileUpdateKeepsUpload(t *testing.T) {
	dir := t.TempDir()
	app, store, user := newProfileApp(t, dir)

	out := sendProfile(t, app, map[string]string{
		"fullName": "Alice Aliyeva", "faculty": "Tarix", "degree": "Bachelor", "course": "2",
	})
	assert.True(t, out.Success)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	stored, err := store.FindUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+entries[0].Name(), stored.ProfilePicture)
}
