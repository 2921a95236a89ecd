package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/contrib/websocket"

	"campus-chat/config/logger"
	"campus-chat/dto"
	"campus-chat/dto/req"
	"campus-chat/middleware"
	"campus-chat/realtime"
	"campus-chat/security"
	"campus-chat/usecase"
)

type WebSocketHandler struct {
	usecase.MessageUsecase
	Hub *realtime.Hub
	Log *logger.AppLogger
}

func NewWebSocketHandler(messageUsecase usecase.MessageUsecase, hub *realtime.Hub, log *logger.AppLogger) *WebSocketHandler {
	return &WebSocketHandler{MessageUsecase: messageUsecase, Hub: hub, Log: log}
}

func (handler *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	// the upgrade guard only lets user sessions through; every event is pinned to that user
	session, ok := c.Locals(middleware.LocalSession).(security.Session)
	if !ok || !session.IsUser() {
		_ = c.Close()
		return
	}
	sessionUserID := session.SubjectID

	client := handler.Hub.Register(c)
	defer func() {
		handler.Hub.Unregister(client)
		_ = c.Close()
	}()

	for {
		var inbound dto.InboundEvent
		if err := c.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				handler.Log.WS.Warning.Warn().Err(err).Msg("Read error")
			}
			return
		}
		handler.Dispatch(context.Background(), client, sessionUserID, inbound)
	}
}

// Dispatch handles one client event on behalf of the session user. Failures
// are reported to the sending client only, except a block-list drop which is
// never reported.
func (handler *WebSocketHandler) Dispatch(ctx context.Context, client *realtime.Client, sessionUserID string, inbound dto.InboundEvent) {
	var err error
	switch inbound.Event {
	case dto.EventJoinFaculty:
		payload := new(req.JoinFacultyRequest)
		if err = decodePayload(inbound.Data, payload, sessionUserID, func() string { return payload.UserID }); err == nil {
			err = handler.join(ctx, client, dto.EventLoadMessages, func() (usecase.JoinResult, error) {
				return handler.MessageUsecase.JoinFaculty(ctx, payload)
			})
		}
	case dto.EventSendGroupMessage:
		payload := new(req.GroupMessageRequest)
		if err = decodePayload(inbound.Data, payload, sessionUserID, func() string { return payload.UserID }); err == nil {
			_, err = handler.MessageUsecase.SendGroupMessage(ctx, payload)
		}
	case dto.EventJoinPrivateChat:
		payload := new(req.JoinPrivateChatRequest)
		if err = decodePayload(inbound.Data, payload, sessionUserID, func() string { return payload.UserID }); err == nil {
			err = handler.join(ctx, client, dto.EventLoadPrivateMessages, func() (usecase.JoinResult, error) {
				return handler.MessageUsecase.JoinPrivateChat(ctx, payload)
			})
		}
	case dto.EventSendPrivateMessage:
		payload := new(req.PrivateMessageRequest)
		if err = decodePayload(inbound.Data, payload, sessionUserID, func() string { return payload.UserID }); err == nil {
			_, err = handler.MessageUsecase.SendPrivateMessage(ctx, payload)
		}
	default:
		err = usecase.ErrUnknownEvent
	}

	if err == nil || errors.Is(err, usecase.ErrRecipientBlocked) {
		return
	}
	handler.reportError(client, inbound.Event, err)
}

func (handler *WebSocketHandler) join(ctx context.Context, client *realtime.Client, loadEvent string, join func() (usecase.JoinResult, error)) error {
	result, err := join()
	if err != nil {
		return err
	}
	handler.Hub.Join(client, result.Room)
	return handler.Hub.Send(client, loadEvent, result.Messages)
}

func (handler *WebSocketHandler) reportError(client *realtime.Client, event string, err error) {
	message := failureMessage(err)
	if message == genericFailure {
		handler.Log.WS.Error.Error().Err(err).Str("event", event).Msg("Failed to handle event")
	}
	if sendErr := handler.Hub.Send(client, dto.EventMessageError, dto.ErrorPayload{Message: message}); sendErr != nil {
		handler.Log.WS.Warning.Warn().Err(sendErr).Msg("Failed to report event error")
	}
}

func decodePayload(data json.RawMessage, payload interface{}, sessionUserID string, userID func() string) error {
	if sessionUserID == "" {
		return usecase.ErrLoginRequired
	}
	if len(data) == 0 {
		return usecase.ErrInvalidRequest
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return usecase.ErrInvalidRequest
	}
	if userID() != sessionUserID {
		return usecase.ErrSessionMismatch
	}
	return nil
}
