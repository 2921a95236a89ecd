package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"campus-chat/dto"
	"campus-chat/dto/req"
	"campus-chat/dto/res"
	"campus-chat/entity"
	"campus-chat/enum"
	"campus-chat/repository"
	"campus-chat/util"
)

// expiryBatchSize bounds how many scheduled deletions one sweep handles.
const expiryBatchSize = 100

type messageUsecase struct {
	store       repository.Store
	validate    *validator.Validate
	log         *logrus.Logger
	broadcaster Broadcaster
	now         func() time.Time
}

func NewMessageUsecase(store repository.Store, validate *validator.Validate, log *logrus.Logger, broadcaster Broadcaster) MessageUsecase {
	return &messageUsecase{
		store:       store,
		validate:    validate,
		log:         log,
		broadcaster: broadcaster,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *messageUsecase) JoinFaculty(ctx context.Context, request *req.JoinFacultyRequest) (JoinResult, error) {
	if err := uc.validate.Struct(request); err != nil {
		return JoinResult{}, err
	}
	if _, err := uc.findUser(ctx, request.UserID); err != nil {
		return JoinResult{}, err
	}
	return uc.history(ctx, util.FacultyRoom(request.Faculty))
}

func (uc *messageUsecase) SendGroupMessage(ctx context.Context, request *req.GroupMessageRequest) (res.MessageResponse, error) {
	if err := uc.validate.Struct(request); err != nil {
		return res.MessageResponse{}, err
	}
	sender, err := uc.findSender(ctx, request.UserID)
	if err != nil {
		return res.MessageResponse{}, err
	}

	message := newMessage(sender, enum.MessageTypeGroup, request.Message)
	message.Faculty = request.Faculty
	message.Room = util.FacultyRoom(request.Faculty)

	return uc.deliver(ctx, message, dto.EventNewGroupMessage)
}

func (uc *messageUsecase) JoinPrivateChat(ctx context.Context, request *req.JoinPrivateChatRequest) (JoinResult, error) {
	if err := uc.validate.Struct(request); err != nil {
		return JoinResult{}, err
	}
	if _, err := uc.findUser(ctx, request.UserID); err != nil {
		return JoinResult{}, err
	}
	if _, err := uc.findUser(ctx, request.TargetUserID); err != nil {
		return JoinResult{}, err
	}
	return uc.history(ctx, util.PrivateRoom(request.UserID, request.TargetUserID))
}

func (uc *messageUsecase) SendPrivateMessage(ctx context.Context, request *req.PrivateMessageRequest) (res.MessageResponse, error) {
	if err := uc.validate.Struct(request); err != nil {
		return res.MessageResponse{}, err
	}
	sender, err := uc.findSender(ctx, request.UserID)
	if err != nil {
		return res.MessageResponse{}, err
	}
	recipient, err := uc.findUser(ctx, request.TargetUserID)
	if err != nil {
		return res.MessageResponse{}, err
	}
	if recipient.HasBlocked(sender.ID) {
		uc.log.WithFields(logrus.Fields{"senderId": sender.ID, "targetUserId": recipient.ID}).
			Debug("private message dropped by block list")
		return res.MessageResponse{}, ErrRecipientBlocked
	}

	message := newMessage(sender, enum.MessageTypePrivate, request.Message)
	message.TargetUserID = recipient.ID
	message.Room = util.PrivateRoom(sender.ID, recipient.ID)

	return uc.deliver(ctx, message, dto.EventNewPrivateMessage)
}

func (uc *messageUsecase) RemoveMessage(ctx context.Context, messageID string) error {
	message, err := uc.store.FindMessageByID(ctx, messageID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMessageNotFound
	}
	if err != nil {
		return err
	}

	if err := uc.store.DeleteMessage(ctx, message.ID); err != nil {
		uc.log.WithError(err).Errorf("failed to delete message : %v", err)
		return err
	}
	if err := uc.store.CancelDeletion(ctx, message.ID); err != nil {
		uc.log.WithError(err).Warn("failed to cancel scheduled deletion")
	}
	uc.broadcaster.BroadcastToRoom(message.Room, dto.EventMessageDeleted, message.ID)

	uc.log.Infof("Message %s removed", message.ID)
	return nil
}

// ExpireDueMessages deletes every message whose expiry has passed and
// announces the removal to its room. It returns how many were processed.
func (uc *messageUsecase) ExpireDueMessages(ctx context.Context, now time.Time) (int, error) {
	processed := 0
	for {
		due, err := uc.store.DueDeletions(ctx, now, expiryBatchSize)
		if err != nil {
			return processed, err
		}
		for _, deletion := range due {
			if err := ctx.Err(); err != nil {
				return processed, err
			}
			// the message may already be gone; deleting it again is a no-op
			if err := uc.store.DeleteMessage(ctx, deletion.MessageID); err != nil {
				return processed, err
			}
			if err := uc.store.CancelDeletion(ctx, deletion.MessageID); err != nil {
				return processed, err
			}
			uc.broadcaster.BroadcastToRoom(deletion.Room, dto.EventMessageDeleted, deletion.MessageID)
			processed++
		}
		if len(due) < expiryBatchSize {
			return processed, nil
		}
	}
}

func (uc *messageUsecase) deliver(ctx context.Context, message *entity.Message, event string) (res.MessageResponse, error) {
	settings, err := currentSettings(ctx, uc.store)
	if err != nil {
		uc.log.WithError(err).Error("failed to load settings")
		return res.MessageResponse{}, err
	}

	now := uc.now()
	message.Content = util.FilterWords(message.Content, settings.FilterWords)
	message.Prepare(now)

	if err := uc.store.CreateMessage(ctx, message); err != nil {
		uc.log.WithError(err).Errorf("failed to save message : %v", err)
		return res.MessageResponse{}, err
	}

	if expiry := settings.ExpiryFor(message.Type); expiry > 0 {
		deletion := &entity.ScheduledDeletion{
			MessageID: message.ID,
			Room:      message.Room,
			FireAt:    message.CreatedAt.Add(expiry),
		}
		if err := uc.store.ScheduleDeletion(ctx, deletion); err != nil {
			uc.log.WithError(err).Errorf("failed to schedule message deletion : %v", err)
			// a message without its expiry record would never be removed
			if delErr := uc.store.DeleteMessage(ctx, message.ID); delErr != nil {
				uc.log.WithError(delErr).Errorf("failed to discard unscheduled message %s : %v", message.ID, delErr)
			}
			return res.MessageResponse{}, err
		}
	}

	response := toMessageResponse(message)
	uc.broadcaster.BroadcastToRoom(message.Room, event, response)
	return response, nil
}

func (uc *messageUsecase) history(ctx context.Context, room string) (JoinResult, error) {
	messages, err := uc.store.RecentMessages(ctx, room, repository.HistoryLimit)
	if err != nil {
		uc.log.WithError(err).Errorf("failed to load history for %s : %v", room, err)
		return JoinResult{}, err
	}
	return JoinResult{Room: room, Messages: toMessageResponses(messages)}, nil
}

func (uc *messageUsecase) findSender(ctx context.Context, userID string) (*entity.User, error) {
	sender, err := uc.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sender.IsActive {
		return nil, ErrAccountInactive
	}
	return sender, nil
}

func (uc *messageUsecase) findUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.store.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func newMessage(sender *entity.User, messageType enum.MessageType, content string) *entity.Message {
	return &entity.Message{
		SenderID:      sender.ID,
		SenderName:    sender.FullName,
		SenderFaculty: sender.Faculty,
		SenderDegree:  sender.Degree,
		SenderCourse:  sender.Course,
		SenderPicture: sender.ProfilePicture,
		Type:          messageType,
		Content:       content,
	}
}
