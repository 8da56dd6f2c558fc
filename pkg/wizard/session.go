package wizard

import (
	"strings"
	"time"

	"github.com/goliatone/go-credlink/pkg/model"
	"github.com/goliatone/go-credlink/pkg/providers"
)

// Field-value keys inside a group's value map. Every other field is keyed by
// its FieldType string; a custom registrar name travels under its own key so
// the sentinel selection and the free text coexist.
const (
	KeyRegistrar       = "registrar"
	KeyRegistrarCustom = "registrar_custom"
)

// Option customises session construction.
type Option func(*Session)

// WithNow overrides the clock used for the expiry gate. Tests use this to
// pin boundary instants.
func WithNow(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session is one respondent's pass through the wizard: the decoded config,
// the resolved groups and slide list, the current position, and everything
// collected so far. Sessions are confined to a single request flow and are
// not safe for concurrent use.
type Session struct {
	config model.FormConfig
	groups []model.CredentialGroup
	slides []Slide
	index  int

	values  []map[string]string
	uploads []model.UploadedFile

	selfCopyEnabled  bool
	selfCopyEmail    string
	selfCopyPassword string
	selfCopyConfirm  string

	now func() time.Time
}

// NewSession builds a session for a decoded config, applying the expiry gate
// before granting it: a config whose expiry is in the past returns
// ErrLinkExpired and no session.
func NewSession(config model.FormConfig, options ...Option) (*Session, error) {
	s := &Session{
		config: config,
		now:    time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if config.Expired(s.now()) {
		return nil, ErrLinkExpired
	}

	s.groups = ResolveGroups(config)
	s.slides = BuildSlides(config, s.groups)
	s.values = make([]map[string]string, len(s.groups))
	for i := range s.values {
		s.values[i] = make(map[string]string)
	}
	return s, nil
}

// Config returns the decoded configuration backing this session.
func (s *Session) Config() model.FormConfig { return s.config }

// Groups returns the resolved credential groups in slide order.
func (s *Session) Groups() []model.CredentialGroup { return s.groups }

// Slides returns the full slide sequence.
func (s *Session) Slides() []Slide { return s.slides }

// Index returns the current slide position.
func (s *Session) Index() int { return s.index }

// Current returns the slide at the current position.
func (s *Session) Current() Slide { return s.slides[s.index] }

// SetField records a field value for a group. Unknown group indices are
// ignored.
func (s *Session) SetField(groupIndex int, key, value string) {
	if groupIndex < 0 || groupIndex >= len(s.values) {
		return
	}
	s.values[groupIndex][key] = value
}

// Field returns the recorded value for a group field, or "".
func (s *Session) Field(groupIndex int, key string) string {
	if groupIndex < 0 || groupIndex >= len(s.values) {
		return ""
	}
	return s.values[groupIndex][key]
}

// SetSelfCopy records the terminal slide's opt-in state.
func (s *Session) SetSelfCopy(enabled bool, email, password, confirm string) {
	s.selfCopyEnabled = enabled
	s.selfCopyEmail = email
	s.selfCopyPassword = password
	s.selfCopyConfirm = confirm
}

// Uploads returns the files committed so far.
func (s *Session) Uploads() []model.UploadedFile { return s.uploads }

// Next advances one slide when the current slide is valid. It reports
// whether the position moved: forward motion is a no-op on an invalid slide
// and on the last slide.
func (s *Session) Next() bool {
	if !s.CurrentValid() || s.index >= len(s.slides)-1 {
		return false
	}
	s.index++
	return true
}

// Back moves one slide back. Always permitted from any non-first slide.
func (s *Session) Back() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

// CurrentValid applies the current slide's validity predicate. Intro,
// instruction, and upload slides never block.
func (s *Session) CurrentValid() bool {
	slide := s.slides[s.index]
	switch slide.Kind {
	case SlideCredential:
		return s.credentialValid(slide.GroupIndex, *slide.Group)
	case SlideSelfCopy:
		if !s.selfCopyEnabled {
			return true
		}
		return strings.TrimSpace(s.selfCopyEmail) != "" &&
			s.selfCopyPassword != "" &&
			s.selfCopyPassword == s.selfCopyConfirm
	default:
		return true
	}
}

// credentialValid reports whether every field in the group satisfies its
// requirement: notes are optional, a registrar needs a selection (plus a
// free-text name when the selection is the custom sentinel), and everything
// else needs a non-blank value.
func (s *Session) credentialValid(groupIndex int, group model.CredentialGroup) bool {
	for _, field := range group.Fields {
		switch field {
		case model.FieldTypeNotes:
			continue
		case model.FieldTypeRegistrar:
			selection := s.Field(groupIndex, KeyRegistrar)
			if selection == "" {
				return false
			}
			if selection == providers.CustomRegistrarID &&
				strings.TrimSpace(s.Field(groupIndex, KeyRegistrarCustom)) == "" {
				return false
			}
		default:
			if strings.TrimSpace(s.Field(groupIndex, string(field))) == "" {
				return false
			}
		}
	}
	return true
}

// clientCopy returns the opt-in choice in payload form, nil when declined.
func (s *Session) clientCopy() *model.ClientCopy {
	if !s.selfCopyEnabled {
		return nil
	}
	return &model.ClientCopy{Email: s.selfCopyEmail, Password: s.selfCopyPassword}
}
