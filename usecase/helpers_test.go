package usecase

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"campus-chat/config/common"
	"campus-chat/entity"
	"campus-chat/repository/memory"
	"campus-chat/util"
)

type broadcastCall struct {
	Room  string
	All   bool
	Event string
	Data  interface{}
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *fakeBroadcaster) BroadcastToRoom(room, event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{Room: room, Event: event, Data: data})
}

func (b *fakeBroadcaster) BroadcastAll(event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{All: true, Event: event, Data: data})
}

func (b *fakeBroadcaster) Calls() []broadcastCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broadcastCall(nil), b.calls...)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *common.Config {
	return common.NewConfig(viper.New())
}

type userOption func(*entity.User)

func inactive() userOption {
	return func(user *entity.User) { user.IsActive = false }
}

func withFaculty(faculty string) userOption {
	return func(user *entity.User) { user.Faculty = faculty }
}

func withPassword(t *testing.T, password string) userOption {
	hash, err := util.HashPassword(password)
	require.NoError(t, err)
	return func(user *entity.User) { user.Password = hash }
}

func createUser(t *testing.T, store *memory.Store, name, email, phone string, opts ...userOption) *entity.User {
	t.Helper()
	user := &entity.User{
		FullName:     name,
		Email:        email,
		Phone:        phone,
		Faculty:      "Tarix",
		Degree:       "Bakalavr",
		Course:       2,
		IsActive:     true,
		BlockedUsers: []string{},
	}
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}
