// internal/domain/repository/notifier_repository.go
package repository

import "context"

// NotifierRepository delivers rendered notifications to the operator.
type NotifierRepository interface {
	// SendMessage delivers an HTML-formatted text message.
	SendMessage(ctx context.Context, text string) error
	// SendPhoto delivers a photo by URL with a plain-text caption.
	SendPhoto(ctx context.Context, photoURL, caption string) error
}
