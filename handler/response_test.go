package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat/dto/res"
	"campus-chat/usecase"
)

func TestErrorHandler(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(log)})
	app.Get("/app-error", func(ctx *fiber.Ctx) error { return usecase.ErrUserNotFound })
	app.Get("/internal", func(ctx *fiber.Ctx) error { return errors.New("db exploded") })
	app.Get("/ok", func(ctx *fiber.Ctx) error { return ok(ctx, "done", map[string]int{"n": 1}) })

	cases := []struct {
		path    string
		status  int
		success bool
		message string
	}{
		{"/app-error", fiber.StatusOK, false, usecase.ErrUserNotFound.Message},
		{"/internal", fiber.StatusOK, false, genericFailure},
		{"/missing", fiber.StatusNotFound, false, "Cannot GET /missing"},
		{"/ok", fiber.StatusOK, true, "done"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body res.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.success, body.Success)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}
