package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"travel-backend/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MessageService persists chat exchanges.
type MessageService struct {
	DB *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db}
}

// Save stores one (message, response) pair. payload, when non-nil, is kept as JSON
// alongside so the chat page can redraw buttons and cards.
func (s *MessageService) Save(ctx context.Context, userID uint, message, response string, payload interface{}) (*models.UserMessage, error) {
	msg := &models.UserMessage{
		UserID:   userID,
		Message:  message,
		Response: response,
	}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			zap.L().Warn("dropping unserialisable chat payload", zap.Uint("user_id", userID), zap.Error(err))
		} else {
			msg.Payload = datatypes.JSON(b)
		}
	}
	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return msg, nil
}

// SaveForUsername is Save keyed by username, for callers that only know the
// dialogue engine's sender id.
func (s *MessageService) SaveForUsername(ctx context.Context, username, message, response string) (*models.UserMessage, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("db error checking user: %w", err)
	}
	return s.Save(ctx, user.ID, message, response, nil)
}

// ListForUser returns the user's messages newest first (or oldest first for the chat page).
func (s *MessageService) ListForUser(ctx context.Context, userID uint, oldestFirst bool) ([]models.UserMessage, error) {
	order := "timestamp DESC, id DESC"
	if oldestFirst {
		order = "timestamp ASC, id ASC"
	}
	var list []models.UserMessage
	if err := s.DB.WithContext(ctx).
		Preload("User.Profile").
		Where("user_id = ?", userID).
		Order(order).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}
	return list, nil
}

// ClearForUser deletes every message of the user and reports how many went.
func (s *MessageService) ClearForUser(ctx context.Context, userID uint) (int64, error) {
	res := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserMessage{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear messages: %w", res.Error)
	}
	return res.RowsAffected, nil
}
