package usecase

import (
	"context"
	"time"

	"campus-chat/dto/req"
	"campus-chat/dto/res"
)

// JoinResult is the room a client joined plus the history replayed to it.
type JoinResult struct {
	Room     string
	Messages []res.MessageResponse
}

type MessageUsecase interface {
	JoinFaculty(ctx context.Context, request *req.JoinFacultyRequest) (JoinResult, error)
	SendGroupMessage(ctx context.Context, request *req.GroupMessageRequest) (res.MessageResponse, error)
	JoinPrivateChat(ctx context.Context, request *req.JoinPrivateChatRequest) (JoinResult, error)
	SendPrivateMessage(ctx context.Context, request *req.PrivateMessageRequest) (res.MessageResponse, error)
	RemoveMessage(ctx context.Context, messageID string) error
	ExpireDueMessages(ctx context.Context, now time.Time) (int, error)
}
