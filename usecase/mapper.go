package usecase

import (
	"slices"

	"campus-chat/dto/res"
	"campus-chat/entity"
)

func toUserResponse(user *entity.User) res.UserResponse {
	return res.UserResponse{
		ID:             user.ID,
		FullName:       user.FullName,
		Email:          user.Email,
		Phone:          user.Phone,
		Faculty:        user.Faculty,
		Degree:         user.Degree,
		Course:         user.Course,
		ProfilePicture: user.ProfilePicture,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
	}
}

func toProfileResponse(user *entity.User) res.UserResponse {
	response := toUserResponse(user)
	response.BlockedUsers = slices.Clone(user.BlockedUsers)
	if response.BlockedUsers == nil {
		response.BlockedUsers = []string{}
	}
	return response
}

func toMessageResponse(message *entity.Message) res.MessageResponse {
	return res.MessageResponse{
		ID:                 message.ID,
		UserID:             message.SenderID,
		UserName:           message.SenderName,
		UserFaculty:        message.SenderFaculty,
		UserDegree:         message.SenderDegree,
		UserCourse:         message.SenderCourse,
		UserProfilePicture: message.SenderPicture,
		Type:               string(message.Type),
		Faculty:            message.Faculty,
		TargetUserID:       message.TargetUserID,
		Message:            message.Content,
		CreatedAt:          message.CreatedAt,
	}
}

func toMessageResponses(messages []entity.Message) []res.MessageResponse {
	responses := make([]res.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, toMessageResponse(&messages[i]))
	}
	return responses
}

func toAdminResponse(admin *entity.Admin) res.AdminResponse {
	return res.AdminResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		CreatedAt: admin.CreatedAt,
	}
}

func toSettingsResponse(settings *entity.Settings) res.SettingsResponse {
	words := slices.Clone(settings.FilterWords)
	if words == nil {
		words = []string{}
	}
	return res.SettingsResponse{
		Rules:                settings.Rules,
		TopicOfTheDay:        settings.TopicOfTheDay,
		FilterWords:          words,
		GroupMessageExpiry:   settings.GroupMessageExpiry,
		PrivateMessageExpiry: settings.PrivateMessageExpiry,
		UpdatedAt:            settings.UpdatedAt,
	}
}
