package ai

import "errors"

var (
	// ErrMissingAPIKey indicates that no API credential is configured.
	// Chat model construction fails fast on this rather than at call time.
	ErrMissingAPIKey = errors.New("API key not found: set the OPENAI_API_KEY environment variable or configure a token")

	// ErrNoChoices indicates the completion API returned an empty choice list.
	ErrNoChoices = errors.New("completion returned no choices")
)
