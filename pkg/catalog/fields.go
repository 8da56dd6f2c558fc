package catalog

import "github.com/goliatone/go-credlink/pkg/model"

// FieldMeta carries the presentation defaults for one field kind.
type FieldMeta struct {
	// Label is the human-readable default label.
	Label string
	// Masked marks fields that render behind a password-style input.
	Masked bool
	// Multiline marks free-form text fields.
	Multiline bool
	// URLInput marks fields whose value should be validated as a URL.
	URLInput bool
	// Linkify marks fields whose value is rendered as a clickable link in
	// the generated document.
	Linkify bool
}

var fieldMeta = map[model.FieldType]FieldMeta{
	model.FieldTypeURL:       {Label: "URL", URLInput: true, Linkify: true},
	model.FieldTypeUsername:  {Label: "Username"},
	model.FieldTypePassword:  {Label: "Password", Masked: true},
	model.FieldTypeEmail:     {Label: "Email"},
	model.FieldTypeAPIToken:  {Label: "API Token", Masked: true},
	model.FieldTypeNotes:     {Label: "Notes", Multiline: true},
	model.FieldTypeRegistrar: {Label: "Domain Registrar"},
}

// FieldLabel returns the default label for a field kind. Unknown kinds fall
// back to the raw type string so stale payload rows still render.
func FieldLabel(t model.FieldType) string {
	if meta, ok := fieldMeta[t]; ok {
		return meta.Label
	}
	return string(t)
}

// MetaFor returns the presentation defaults for a field kind.
func MetaFor(t model.FieldType) (FieldMeta, bool) {
	meta, ok := fieldMeta[t]
	return meta, ok
}

// CustomFieldTypes lists the field kinds an operator can pick for custom
// groups. Registrar is excluded: it only appears through the Domain Login
// preset, which is where the registrar dropdown lives.
var CustomFieldTypes = []model.FieldType{
	model.FieldTypeURL,
	model.FieldTypeUsername,
	model.FieldTypePassword,
	model.FieldTypeEmail,
	model.FieldTypeAPIToken,
	model.FieldTypeNotes,
}
