package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat/dto"
	"campus-chat/dto/req"
	"campus-chat/entity"
	"campus-chat/repository/memory"
	"campus-chat/util"
)

var sendTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type messageFixture struct {
	store       *memory.Store
	broadcaster *fakeBroadcaster
	uc          *messageUsecase
}

func newMessageFixture(t *testing.T) messageFixture {
	t.Helper()
	store := memory.NewStore()
	broadcaster := &fakeBroadcaster{}
	uc := NewMessageUsecase(store, util.NewValidator(), quietLogger(), broadcaster).(*messageUsecase)
	uc.now = func() time.Time { return sendTime }
	return messageFixture{store: store, broadcaster: broadcaster, uc: uc}
}

func (f messageFixture) saveSettings(t *testing.T, mutate func(*entity.Settings)) {
	t.Helper()
	settings := entity.DefaultSettings()
	mutate(&settings)
	require.NoError(t, f.store.SaveSettings(context.Background(), &settings))
}

func TestSendGroupMessageFiltersPersistsAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	sender := createUser(t, f.store, "Aysel", "aysel@bsu.edu.az", "+994501111111")

	got, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Tarix", Message: "bu PIS adamdir"})
	require.NoError(t, err)

	assert.Equal(t, "bu *** adamdir", got.Message)
	assert.Equal(t, "group", got.Type)
	assert.Equal(t, "Tarix", got.Faculty)
	assert.Empty(t, got.TargetUserID)
	assert.Equal(t, "Aysel", got.UserName)
	assert.Equal(t, sendTime, got.CreatedAt)

	stored, err := f.store.FindMessageByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "bu *** adamdir", stored.Content)

	calls := f.broadcaster.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, util.FacultyRoom("Tarix"), calls[0].Room)
	assert.Equal(t, dto.EventNewGroupMessage, calls[0].Event)
	assert.Equal(t, got, calls[0].Data)

	due, err := f.store.DueDeletions(ctx, sendTime.Add(24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, got.ID, due[0].MessageID)
	assert.Equal(t, sendTime.Add(24*time.Hour), due[0].FireAt)
}

func TestZeroExpiryKeepsMessagesForever(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	f.saveSettings(t, func(settings *entity.Settings) { settings.GroupMessageExpiry = 0 })
	sender := createUser(t, f.store, "Aysel", "aysel@bsu.edu.az", "+994501111111")

	_, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Tarix", Message: "salam"})
	require.NoError(t, err)

	due, err := f.store.DueDeletions(ctx, sendTime.AddDate(10, 0, 0), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestSendGroupMessageRejectsUnknownAndInactiveSenders(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	sleeper := createUser(t, f.store, "Off", "off@bsu.edu.az", "+994501111111", inactive())

	_, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: "ghost", Faculty: "Tarix", Message: "salam"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sleeper.ID, Faculty: "Tarix", Message: "salam"})
	assert.ErrorIs(t, err, ErrAccountInactive)

	assert.Empty(t, f.broadcaster.Calls())
}

func TestPrivateMessageToBlockingUserIsDropped(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	alice := createUser(t, f.store, "Alice", "alice@bsu.edu.az", "+994501111111")
	bob := createUser(t, f.store, "Bob", "bob@bsu.edu.az", "+994502222222")
	bob.Block(alice.ID)
	require.NoError(t, f.store.UpdateUser(ctx, bob))

	_, err := f.uc.SendPrivateMessage(ctx, &req.PrivateMessageRequest{UserID: alice.ID, TargetUserID: bob.ID, Message: "salam"})
	assert.ErrorIs(t, err, ErrRecipientBlocked)

	history, err := f.store.RecentMessages(ctx, util.PrivateRoom(alice.ID, bob.ID), 50)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, f.broadcaster.Calls())

	// the block is one-way
	_, err = f.uc.SendPrivateMessage(ctx, &req.PrivateMessageRequest{UserID: bob.ID, TargetUserID: alice.ID, Message: "salam"})
	assert.NoError(t, err)
}

func TestPrivateChatRoomIsSharedByBothUsers(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	alice := createUser(t, f.store, "Alice", "alice@bsu.edu.az", "+994501111111")
	bob := createUser(t, f.store, "Bob", "bob@bsu.edu.az", "+994502222222")

	sent, err := f.uc.SendPrivateMessage(ctx, &req.PrivateMessageRequest{UserID: alice.ID, TargetUserID: bob.ID, Message: "nalayiq söz"})
	require.NoError(t, err)
	assert.Equal(t, "******* söz", sent.Message)
	assert.Equal(t, bob.ID, sent.TargetUserID)
	assert.Equal(t, "private", sent.Type)

	fromAlice, err := f.uc.JoinPrivateChat(ctx, &req.JoinPrivateChatRequest{UserID: alice.ID, TargetUserID: bob.ID})
	require.NoError(t, err)
	fromBob, err := f.uc.JoinPrivateChat(ctx, &req.JoinPrivateChatRequest{UserID: bob.ID, TargetUserID: alice.ID})
	require.NoError(t, err)

	assert.Equal(t, fromAlice.Room, fromBob.Room)
	assert.Equal(t, fromAlice.Messages, fromBob.Messages)
	require.Len(t, fromAlice.Messages, 1)
	assert.Equal(t, sent.ID, fromAlice.Messages[0].ID)

	calls := f.broadcaster.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, fromAlice.Room, calls[0].Room)
	assert.Equal(t, dto.EventNewPrivateMessage, calls[0].Event)

	due, err := f.store.DueDeletions(ctx, sendTime.Add(48*time.Hour), 10)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestJoinPrivateChatNeedsBothUsers(t *testing.T) {
	f := newMessageFixture(t)
	alice := createUser(t, f.store, "Alice", "alice@bsu.edu.az", "+994501111111")

	_, err := f.uc.JoinPrivateChat(context.Background(), &req.JoinPrivateChatRequest{UserID: alice.ID, TargetUserID: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJoinFacultyReplaysLatestFiftyInOrder(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	sender := createUser(t, f.store, "Aysel", "aysel@bsu.edu.az", "+994501111111")

	for i := 0; i < 55; i++ {
		_, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Tarix", Message: fmt.Sprintf("m%d", i)})
		require.NoError(t, err)
	}
	_, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Fizika", Message: "other room"})
	require.NoError(t, err)

	joined, err := f.uc.JoinFaculty(ctx, &req.JoinFacultyRequest{UserID: sender.ID, Faculty: "Tarix"})
	require.NoError(t, err)

	assert.Equal(t, util.FacultyRoom("Tarix"), joined.Room)
	require.Len(t, joined.Messages, 50)
	assert.Equal(t, "m5", joined.Messages[0].Message)
	assert.Equal(t, "m54", joined.Messages[49].Message)
}

func TestExpireDueMessages(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	sender := createUser(t, f.store, "Aysel", "aysel@bsu.edu.az", "+994501111111")

	sent, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Tarix", Message: "salam"})
	require.NoError(t, err)

	expired, err := f.uc.ExpireDueMessages(ctx, sendTime.Add(23*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, expired)

	expired, err = f.uc.ExpireDueMessages(ctx, sendTime.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	_, err = f.store.FindMessageByID(ctx, sent.ID)
	assert.Error(t, err)

	calls := f.broadcaster.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, broadcastCall{Room: util.FacultyRoom("Tarix"), Event: dto.EventMessageDeleted, Data: sent.ID}, last)

	expired, err = f.uc.ExpireDueMessages(ctx, sendTime.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestExpireToleratesMessagesDeletedElsewhere(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	sender := createUser(t, f.store, "Aysel", "aysel@bsu.edu.az", "+994501111111")

	sent, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Tarix", Message: "salam"})
	require.NoError(t, err)
	require.NoError(t, f.store.DeleteMessage(ctx, sent.ID))

	expired, err := f.uc.ExpireDueMessages(ctx, sendTime.Add(25*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 1, expired)
}

func TestRemoveMessageCancelsScheduledDeletion(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	sender := createUser(t, f.store, "Aysel", "aysel@bsu.edu.az", "+994501111111")

	sent, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Tarix", Message: "salam"})
	require.NoError(t, err)

	require.NoError(t, f.uc.RemoveMessage(ctx, sent.ID))
	assert.ErrorIs(t, f.uc.RemoveMessage(ctx, sent.ID), ErrMessageNotFound)

	due, err := f.store.DueDeletions(ctx, sendTime.Add(100*time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	calls := f.broadcaster.Calls()
	assert.Equal(t, dto.EventMessageDeleted, calls[len(calls)-1].Event)
	assert.Equal(t, sent.ID, calls[len(calls)-1].Data)
}

func TestSettingsChangeDoesNotRescheduleSentMessages(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	sender := createUser(t, f.store, "Aysel", "aysel@bsu.edu.az", "+994501111111")

	_, err := f.uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Tarix", Message: "salam"})
	require.NoError(t, err)
	f.saveSettings(t, func(settings *entity.Settings) { settings.GroupMessageExpiry = 1 })

	due, err := f.store.DueDeletions(ctx, sendTime.Add(2*time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

type failingScheduleStore struct {
	*memory.Store
}

func (s failingScheduleStore) ScheduleDeletion(ctx context.Context, deletion *entity.ScheduledDeletion) error {
	return errors.New("deletion table unavailable")
}

func TestSendDiscardsMessageWhenExpiryCannotBeScheduled(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	broadcaster := &fakeBroadcaster{}
	uc := NewMessageUsecase(failingScheduleStore{store}, util.NewValidator(), quietLogger(), broadcaster)
	sender := createUser(t, store, "Aysel", "aysel@bsu.edu.az", "+994501234567")

	_, err := uc.SendGroupMessage(ctx, &req.GroupMessageRequest{UserID: sender.ID, Faculty: "Tarix", Message: "salam"})
	require.Error(t, err)

	history, err := store.RecentMessages(ctx, util.FacultyRoom("Tarix"), 50)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, broadcaster.Calls())
}
