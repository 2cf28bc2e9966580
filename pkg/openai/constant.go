package openai

import "time"

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultBaseURL is the OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTimeout bounds a single chat completion call. Extraction latency
	// dominates turn latency, so this is deliberately short for a phone call.
	DefaultTimeout = 15 * time.Second
)
