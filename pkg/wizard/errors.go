package wizard

import "errors"

var (
	// ErrLinkExpired signals a structurally valid config whose expiry is in
	// the past. Terminal for that link; surfaced distinctly from a malformed
	// token.
	ErrLinkExpired = errors.New("wizard: link expired")
	// ErrUploadTimeout signals an upload that neither completed nor failed
	// within the bounded wait. Retryable; it never fails the wizard itself.
	ErrUploadTimeout = errors.New("wizard: upload timed out")
)
