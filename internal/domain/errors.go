package domain

import "errors"

var (
	// ErrUnreadable means the readability gate rejected the document text;
	// extraction was never attempted.
	ErrUnreadable = errors.New("document text is unreadable")

	// ErrProfileNotFound means no extraction profile exists for the
	// provider/document-type combination. Fatal for that document only.
	ErrProfileNotFound = errors.New("no extraction profile for provider")

	// ErrMalformedNumber and ErrMalformedDate mark tokens that were present
	// but unparseable. Callers downgrade the field to absent and log.
	ErrMalformedNumber = errors.New("malformed locale number")
	ErrMalformedDate   = errors.New("malformed locale date")

	// ErrMissingAICredential is a pre-run configuration failure: a
	// cross-check run was requested without an API key.
	ErrMissingAICredential = errors.New("AI credential not configured")
)
