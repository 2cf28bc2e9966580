package twilio

import (
	"restaurant-voice-agent/internal/conversation"
	pkgLog "restaurant-voice-agent/pkg/log"
)

// GatherPath is the webhook Twilio posts gathered speech to. The CallSid is
// carried as a query parameter because Gather callbacks do not always repeat
// the form fields of the originating request.
const GatherPath = "/webhooks/voice/gather"

type Handler struct {
	uc       conversation.UseCase
	security *SecurityValidator
	l        pkgLog.Logger
}

func NewHandler(uc conversation.UseCase, securityConfig SecurityConfig, l pkgLog.Logger) *Handler {
	return &Handler{
		uc:       uc,
		security: NewSecurityValidator(securityConfig),
		l:        l,
	}
}
