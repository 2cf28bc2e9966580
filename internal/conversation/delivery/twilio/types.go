package twilio

// SecurityConfig controls webhook request validation.
type SecurityConfig struct {
	// AuthToken is the Twilio account auth token used to verify the
	// X-Twilio-Signature header.
	AuthToken string

	// ValidateSignatures toggles signature verification. Disabled in local
	// development where requests do not come from Twilio.
	ValidateSignatures bool

	// RateLimitPerMin caps webhook requests per source per minute.
	RateLimitPerMin int
}

// Form field and query parameter names used by Twilio voice webhooks.
const (
	paramCallSID      = "CallSid"
	paramCallStatus   = "CallStatus"
	paramSpeechResult = "SpeechResult"
)

// Terminal call statuses reported by the status callback.
func isTerminalCallStatus(status string) bool {
	switch status {
	case "completed", "failed", "busy", "no-answer":
		return true
	}
	return false
}
