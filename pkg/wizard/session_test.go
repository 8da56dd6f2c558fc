package wizard_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-credlink/pkg/model"
	"github.com/goliatone/go-credlink/pkg/providers"
	"github.com/goliatone/go-credlink/pkg/wizard"
)

func newSession(t *testing.T, config model.FormConfig, options ...wizard.Option) *wizard.Session {
	t.Helper()
	s, err := wizard.NewSession(config, options...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	expired := model.FormConfig{ExpiresAt: now.Add(-time.Millisecond)}
	if _, err := wizard.NewSession(expired, wizard.WithNow(clock)); !errors.Is(err, wizard.ErrLinkExpired) {
		t.Fatalf("err = %v, want ErrLinkExpired", err)
	}

	future := model.FormConfig{ExpiresAt: now.Add(time.Millisecond)}
	if _, err := wizard.NewSession(future, wizard.WithNow(clock)); err != nil {
		t.Fatalf("future expiry rejected: %v", err)
	}

	unbounded := model.FormConfig{}
	if _, err := wizard.NewSession(unbounded, wizard.WithNow(clock)); err != nil {
		t.Fatalf("config without expiry rejected: %v", err)
	}
}

func TestCredentialSlideValidity(t *testing.T) {
	config := model.FormConfig{
		Custom: []model.CredentialGroup{{
			Platform: "Domain Login",
			Fields:   []model.FieldType{model.FieldTypeRegistrar, model.FieldTypeNotes},
		}},
	}
	s := newSession(t, config)
	if !s.Next() {
		t.Fatal("intro slide must not block")
	}
	if s.Current().Kind != wizard.SlideCredential {
		t.Fatalf("current = %v, want credential", s.Current().Kind)
	}

	if s.CurrentValid() {
		t.Fatal("empty registrar selection must be invalid")
	}

	// Any non-custom selection is enough; notes stay optional.
	s.SetField(0, wizard.KeyRegistrar, "namecheap")
	if !s.CurrentValid() {
		t.Fatal("registrar selection with blank notes must be valid")
	}

	// The custom sentinel additionally requires a free-text name.
	s.SetField(0, wizard.KeyRegistrar, providers.CustomRegistrarID)
	if s.CurrentValid() {
		t.Fatal("custom sentinel without a name must be invalid")
	}
	s.SetField(0, wizard.KeyRegistrarCustom, "   ")
	if s.CurrentValid() {
		t.Fatal("whitespace-only custom name must be invalid")
	}
	s.SetField(0, wizard.KeyRegistrarCustom, "Acme DNS")
	if !s.CurrentValid() {
		t.Fatal("custom sentinel with a name must be valid")
	}
}

func TestTextFieldsRequireNonBlankValues(t *testing.T) {
	config := model.FormConfig{
		Custom: []model.CredentialGroup{{
			Platform: "Acme CRM",
			Fields:   []model.FieldType{model.FieldTypeUsername, model.FieldTypePassword},
		}},
	}
	s := newSession(t, config)
	s.Next()

	s.SetField(0, string(model.FieldTypeUsername), "  ")
	s.SetField(0, string(model.FieldTypePassword), "hunter2")
	if s.CurrentValid() {
		t.Fatal("whitespace-only username must be invalid")
	}
	s.SetField(0, string(model.FieldTypeUsername), "jordan")
	if !s.CurrentValid() {
		t.Fatal("filled credentials must be valid")
	}
}

func TestNavigationIsStrictlySequential(t *testing.T) {
	config := model.FormConfig{
		Custom: []model.CredentialGroup{{
			Platform: "Acme CRM",
			Fields:   []model.FieldType{model.FieldTypeUsername},
		}},
	}
	s := newSession(t, config)

	if s.Back() {
		t.Fatal("back from the first slide must be a no-op")
	}
	if !s.Next() {
		t.Fatal("intro advance failed")
	}

	// Forward motion is a no-op while the credential slide is invalid.
	if s.Next() {
		t.Fatal("advance past an invalid credential slide must be a no-op")
	}
	if s.Index() != 1 {
		t.Fatalf("index = %d, want 1", s.Index())
	}

	// Backward motion is always permitted.
	if !s.Back() {
		t.Fatal("back from a non-first slide failed")
	}

	s.Next()
	s.SetField(0, string(model.FieldTypeUsername), "jordan")
	if !s.Next() {
		t.Fatal("advance past a valid credential slide failed")
	}
	if s.Current().Kind != wizard.SlideSelfCopy {
		t.Fatalf("current = %v, want selfCopy", s.Current().Kind)
	}

	// Last slide: no further forward motion.
	s.Next()
	if s.Current().Kind != wizard.SlideSelfCopy {
		t.Fatal("advanced past the terminal slide")
	}
}

func TestSelfCopySlideValidity(t *testing.T) {
	s := newSession(t, model.FormConfig{})
	s.Next()
	if s.Current().Kind != wizard.SlideSelfCopy {
		t.Fatalf("current = %v, want selfCopy", s.Current().Kind)
	}

	// Opt-out is always valid.
	if !s.CurrentValid() {
		t.Fatal("declined self-copy must be valid")
	}

	s.SetSelfCopy(true, "", "", "")
	if s.CurrentValid() {
		t.Fatal("opt-in without email/password must be invalid")
	}
	s.SetSelfCopy(true, "me@client.test", "pw", "different")
	if s.CurrentValid() {
		t.Fatal("mismatched confirmation must be invalid")
	}
	s.SetSelfCopy(true, "me@client.test", "pw", "pw")
	if !s.CurrentValid() {
		t.Fatal("complete opt-in must be valid")
	}
}
