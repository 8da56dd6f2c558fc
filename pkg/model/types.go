package model

import "time"

// FieldType enumerates the closed set of credential field kinds a group can
// request. The string values are wire identifiers used both inside encoded
// links and in submission payloads, so they must remain stable.
type FieldType string

const (
	FieldTypeURL       FieldType = "url"
	FieldTypeUsername  FieldType = "username"
	FieldTypePassword  FieldType = "password"
	FieldTypeEmail     FieldType = "email"
	FieldTypeAPIToken  FieldType = "apiToken"
	FieldTypeNotes     FieldType = "notes"
	FieldTypeRegistrar FieldType = "registrar"
)

// FieldTypes lists every valid FieldType in a stable order.
var FieldTypes = []FieldType{
	FieldTypeURL,
	FieldTypeUsername,
	FieldTypePassword,
	FieldTypeEmail,
	FieldTypeAPIToken,
	FieldTypeNotes,
	FieldTypeRegistrar,
}

// Valid reports whether t is one of the known field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeURL, FieldTypeUsername, FieldTypePassword, FieldTypeEmail,
		FieldTypeAPIToken, FieldTypeNotes, FieldTypeRegistrar:
		return true
	default:
		return false
	}
}

// CredentialGroup describes one logical login/service the client must provide
// credentials for. Groups are created at configuration-build time, either
// from a preset or as a custom entry, and are immutable once encoded into a
// link.
type CredentialGroup struct {
	// Platform is the display name for this service. Never empty.
	Platform string `json:"platform"`
	// Fields lists which values to collect, in presentation order.
	Fields []FieldType `json:"fields"`
	// SignupURL, when set on a custom group, produces a synthesized
	// instruction slide inviting the client to create an account first.
	SignupURL string `json:"signupUrl,omitempty"`
}

// InstructionStep is a single guidance screen shown before a preset's
// credential-entry slide. Body supports a lightweight bold-emphasis markup
// (**text**).
type InstructionStep struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	LinkURL   string `json:"linkUrl,omitempty"`
	LinkLabel string `json:"linkLabel,omitempty"`
	Highlight string `json:"highlight,omitempty"`
	Image     string `json:"image,omitempty"`
}

// FormConfig is the decoded, authoritative description of one outstanding
// credential request. It is constructed once by the operator, serialized into
// a link, and decoded fresh on every client page load; it is never mutated
// after decode.
type FormConfig struct {
	ClientName   string `json:"clientName"`
	BusinessName string `json:"businessName"`
	ReturnEmail  string `json:"returnEmail"`
	// Presets holds catalog preset codes in presentation order.
	Presets []string `json:"presets"`
	// Custom holds ad-hoc credential groups appended after the presets.
	Custom []CredentialGroup `json:"custom"`
	// ExpiresAt, when non-zero, is checked against the current time before a
	// wizard session is granted. An expired config is terminal for that link.
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	// RequestUploads adds a file-upload slide to the wizard.
	RequestUploads bool `json:"requestUploads,omitempty"`
}

// Expired reports whether the config carries an expiry that is in the past
// relative to now. A config without an expiry never expires.
func (c FormConfig) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// UploadedFile is the record handed back by the external upload collaborator.
type UploadedFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// FieldValue is a single resolved field in a submission.
type FieldValue struct {
	Label string    `json:"label"`
	Value string    `json:"value"`
	Type  FieldType `json:"type"`
}

// CredentialGroupValue is the submission-time shape of one credential group.
// LoginURL is resolved once at assembly time and is not part of FormConfig.
type CredentialGroupValue struct {
	Platform string       `json:"platform"`
	Fields   []FieldValue `json:"fields"`
	LoginURL string       `json:"loginUrl,omitempty"`
}

// ClientCopy captures the respondent's opt-in request for a personal copy of
// the generated document, encrypted with their own password.
type ClientCopy struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmissionPayload is the document sent to the server boundary. It exists
// only for the duration of one submit request and is never persisted.
type SubmissionPayload struct {
	ClientName   string                 `json:"clientName"`
	BusinessName string                 `json:"businessName"`
	ReturnEmail  string                 `json:"returnEmail"`
	Credentials  []CredentialGroupValue `json:"credentials"`
	Uploads      []UploadedFile         `json:"uploads,omitempty"`
	ClientCopy   *ClientCopy            `json:"clientCopy,omitempty"`
}
