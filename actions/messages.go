package actions

import (
	"context"
	"errors"

	"travel-backend/models"
	"travel-backend/services"

	"go.uber.org/zap"
)

type CancelBooking struct{}

func (CancelBooking) Name() string { return "action_cancel_booking" }

func (CancelBooking) Run(_ context.Context, d *Dispatcher, _ *Tracker) ([]Event, error) {
	d.Utter("Your booking cancellation request has been received and is being processed.")
	return []Event{}, nil
}

// MessageSaver is the part of services.MessageService SaveMessage needs.
type MessageSaver interface {
	SaveForUsername(ctx context.Context, username, message, response string) (*models.UserMessage, error)
}

// SaveMessage stores the latest exchange for the sender. Unknown senders and
// storage errors are logged, never reported to the user.
type SaveMessage struct {
	Messages MessageSaver
}

func (a *SaveMessage) Name() string { return "action_save_message" }

func (a *SaveMessage) Run(ctx context.Context, _ *Dispatcher, t *Tracker) ([]Event, error) {
	response, ok := t.LastBotText()
	if !ok {
		response = "No response"
	}

	_, err := a.Messages.SaveForUsername(ctx, t.SenderID, t.LatestMessage.Text, response)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		zap.L().Warn("user not found, message not saved", zap.String("sender", t.SenderID))
	case err != nil:
		zap.L().Error("failed to save message", zap.String("sender", t.SenderID), zap.Error(err))
	default:
		zap.L().Debug("saved message", zap.String("sender", t.SenderID))
	}
	return []Event{}, nil
}
