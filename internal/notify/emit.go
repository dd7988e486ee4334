package notify

import (
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// Emit persists the notification record and broadcasts the event to every
// open stream. Both steps are best-effort: a failed insert is logged and the
// broadcast still goes out, so the originating mutation never fails or rolls
// back because nobody could be notified.
func Emit(event string, record models.Notification, payload any) {
	if err := database.DB.Create(&record).Error; err != nil {
		log.Warn().Err(err).Str("event", event).Msg("notification record not persisted")
	}
	hub.Broadcast(event, payload)
}
