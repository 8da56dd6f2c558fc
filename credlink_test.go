package credlink_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	credlink "github.com/goliatone/go-credlink"
	"github.com/goliatone/go-credlink/pkg/codec"
	"github.com/goliatone/go-credlink/pkg/document"
	"github.com/goliatone/go-credlink/pkg/mail"
	"github.com/goliatone/go-credlink/pkg/model"
	"github.com/goliatone/go-credlink/pkg/wizard"
)

func TestBuildAndParseLink(t *testing.T) {
	config := model.FormConfig{
		ClientName:   "Jordan Avery",
		BusinessName: "Avery Interiors",
		ReturnEmail:  "ops@agency.test",
		Presets:      []string{"dl"},
		Custom: []model.CredentialGroup{
			{Platform: "Acme CRM", Fields: []model.FieldType{model.FieldTypeUsername, model.FieldTypePassword}},
		},
		RequestUploads: true,
	}

	link, err := credlink.BuildLink("https://forms.agency.test/", config)
	if err != nil {
		t.Fatalf("build link: %v", err)
	}
	if !strings.HasPrefix(link, "https://forms.agency.test/form?") {
		t.Fatalf("link = %q", link)
	}
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse produced link: %v", err)
	}
	if parsed.Query().Get(credlink.LinkParam) == "" {
		t.Fatalf("link %q is missing the %q parameter", link, credlink.LinkParam)
	}

	got, err := credlink.ParseLink(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if diff := cmp.Diff(config, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLinkErrors(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{"missing parameter", "https://forms.agency.test/form"},
		{"empty parameter", "https://forms.agency.test/form?data="},
		{"garbage token", "https://forms.agency.test/form?data=%21%21%21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := credlink.ParseLink(tt.link)
			if !errors.Is(err, codec.ErrMalformedLink) {
				t.Fatalf("err = %v, want ErrMalformedLink", err)
			}
		})
	}
}

// recordingEngine notes the password each canvas was opened with, in order.
type recordingEngine struct {
	passwords []string
	canvasErr error
}

type recordingCanvas struct{}

func (recordingCanvas) Title(string)       {}
func (recordingCanvas) Label(string)       {}
func (recordingCanvas) Strong(string)      {}
func (recordingCanvas) Text(string)        {}
func (recordingCanvas) Section(string)     {}
func (recordingCanvas) Row(string, string) {}
func (recordingCanvas) Link(string, string) {
}
func (recordingCanvas) Space(float64)           {}
func (recordingCanvas) Output() ([]byte, error) { return []byte("%PDF-stub"), nil }

func (e *recordingEngine) NewCanvas(password string) (document.Canvas, error) {
	if e.canvasErr != nil {
		return nil, e.canvasErr
	}
	e.passwords = append(e.passwords, password)
	return recordingCanvas{}, nil
}

type fakeSender struct {
	sent    []mail.Message
	failFor string
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) error {
	if f.failFor != "" && msg.To == f.failFor {
		return errors.New("provider down")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newService(t *testing.T, engine document.Engine, sender mail.Sender) *credlink.Service {
	t.Helper()
	generator, err := document.New(engine)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	dispatcher, err := mail.NewDispatcher(sender)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	service, err := credlink.NewService(generator, dispatcher, "operator-pass")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func samplePayload() model.SubmissionPayload {
	return model.SubmissionPayload{
		ClientName:   "Jordan Avery",
		BusinessName: "Avery Interiors",
		ReturnEmail:  "ops@agency.test",
		Credentials: []model.CredentialGroupValue{{
			Platform: "Domain Login",
			LoginURL: "https://www.namecheap.com/myaccount/login/",
			Fields: []model.FieldValue{
				{Label: "Registrar", Value: "Namecheap", Type: model.FieldTypeRegistrar},
				{Label: "username", Value: "jordan", Type: model.FieldTypeUsername},
				{Label: "password", Value: "s3cret", Type: model.FieldTypePassword},
			},
		}},
	}
}

func TestProcessSubmission(t *testing.T) {
	engine := &recordingEngine{}
	sender := &fakeSender{}
	service := newService(t, engine, sender)

	if err := service.ProcessSubmission(context.Background(), samplePayload()); err != nil {
		t.Fatalf("process: %v", err)
	}

	if diff := cmp.Diff([]string{"operator-pass"}, engine.passwords); diff != "" {
		t.Fatalf("canvas passwords (-want +got):\n%s", diff)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if sender.sent[0].To != "ops@agency.test" {
		t.Fatalf("receipt to = %q", sender.sent[0].To)
	}
}

func TestProcessSubmissionWithSelfCopy(t *testing.T) {
	engine := &recordingEngine{}
	sender := &fakeSender{}
	service := newService(t, engine, sender)

	payload := samplePayload()
	payload.ClientCopy = &model.ClientCopy{Email: "jordan@biz.test", Password: "jordans-own"}

	if err := service.ProcessSubmission(context.Background(), payload); err != nil {
		t.Fatalf("process: %v", err)
	}

	if diff := cmp.Diff([]string{"operator-pass", "jordans-own"}, engine.passwords); diff != "" {
		t.Fatalf("canvas passwords (-want +got):\n%s", diff)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.sent))
	}
	if sender.sent[1].To != "jordan@biz.test" {
		t.Fatalf("self-copy to = %q", sender.sent[1].To)
	}
}

func TestReceiptFailureDoesNotBlockSelfCopy(t *testing.T) {
	engine := &recordingEngine{}
	sender := &fakeSender{failFor: "ops@agency.test"}
	service := newService(t, engine, sender)

	payload := samplePayload()
	payload.ClientCopy = &model.ClientCopy{Email: "jordan@biz.test", Password: "jordans-own"}

	err := service.ProcessSubmission(context.Background(), payload)
	if err == nil {
		t.Fatal("receipt failure must surface")
	}
	if len(sender.sent) != 1 || sender.sent[0].To != "jordan@biz.test" {
		t.Fatalf("self-copy not delivered independently: %+v", sender.sent)
	}
}

func TestRenderFailureAbortsBeforeSending(t *testing.T) {
	engine := &recordingEngine{canvasErr: errors.New("engine broken")}
	sender := &fakeSender{}
	service := newService(t, engine, sender)

	if err := service.ProcessSubmission(context.Background(), samplePayload()); err == nil {
		t.Fatal("render failure must surface")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("sent %d messages after render failure, want 0", len(sender.sent))
	}
}

// Exercises the whole pipeline the way the wizard would drive it: decode a
// link, walk the session, assemble the payload, then process it.
func TestLinkToSubmissionFlow(t *testing.T) {
	config := model.FormConfig{
		ClientName:   "Jordan Avery",
		BusinessName: "Avery Interiors",
		ReturnEmail:  "ops@agency.test",
		Presets:      []string{"dl"},
		Custom: []model.CredentialGroup{
			{Platform: "Acme CRM", Fields: []model.FieldType{model.FieldTypeUsername, model.FieldTypePassword}},
		},
	}
	link, err := credlink.BuildLink("https://forms.agency.test", config)
	if err != nil {
		t.Fatalf("build link: %v", err)
	}
	decoded, err := credlink.ParseLink(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}

	session, err := wizard.NewSession(decoded)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for _, slide := range session.Slides() {
		if slide.Kind != wizard.SlideCredential {
			continue
		}
		if slide.Group.Platform == "Domain Login" {
			session.SetField(slide.GroupIndex, wizard.KeyRegistrar, "namecheap")
			session.SetField(slide.GroupIndex, string(model.FieldTypeUsername), "jordan")
			session.SetField(slide.GroupIndex, string(model.FieldTypePassword), "s3cret")
		} else {
			session.SetField(slide.GroupIndex, string(model.FieldTypeUsername), "jordan@crm")
			session.SetField(slide.GroupIndex, string(model.FieldTypePassword), "crm-pass")
		}
	}
	payload := session.Payload()

	if payload.Credentials[0].LoginURL != "https://www.namecheap.com/myaccount/login/" {
		t.Fatalf("registrar login url = %q", payload.Credentials[0].LoginURL)
	}
	if payload.Credentials[0].Fields[0].Value != "Namecheap" {
		t.Fatalf("registrar value = %q", payload.Credentials[0].Fields[0].Value)
	}

	engine := &recordingEngine{}
	sender := &fakeSender{}
	service := newService(t, engine, sender)
	if err := service.ProcessSubmission(context.Background(), payload); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if sender.sent[0].Attachments[0].Filename != "credentials-jordan-avery.pdf" {
		t.Fatalf("attachment = %q", sender.sent[0].Attachments[0].Filename)
	}
}
