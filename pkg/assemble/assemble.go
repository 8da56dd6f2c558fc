// Package assemble converts in-progress per-group field values into the
// finalized, typed submission payload. Assembly is pure data transformation
// over already-validated wizard state: it never fails, and the
// registrar-or-custom-or-unknown branch degrades gracefully instead of
// raising.
package assemble

import (
	"github.com/goliatone/go-credlink/pkg/model"
	"github.com/goliatone/go-credlink/pkg/providers"
)

// Field-value map keys shared with the wizard session.
const (
	keyRegistrar       = "registrar"
	keyRegistrarCustom = "registrar_custom"
)

// BuildPayload resolves the collected values into a SubmissionPayload. For
// each group every field except registrar maps directly, preserving order; a
// registrar field is resolved through the provider directory and prepended.
// A directory hit also sets the group's login URL; otherwise the platform
// login-URL table is consulted as a fallback.
func BuildPayload(
	config model.FormConfig,
	groups []model.CredentialGroup,
	values []map[string]string,
	uploads []model.UploadedFile,
	clientCopy *model.ClientCopy,
) model.SubmissionPayload {
	payload := model.SubmissionPayload{
		ClientName:   config.ClientName,
		BusinessName: config.BusinessName,
		ReturnEmail:  config.ReturnEmail,
		Credentials:  make([]model.CredentialGroupValue, 0, len(groups)),
		ClientCopy:   clientCopy,
	}
	if len(uploads) > 0 {
		payload.Uploads = uploads
	}

	for i, group := range groups {
		var groupValues map[string]string
		if i < len(values) {
			groupValues = values[i]
		}
		payload.Credentials = append(payload.Credentials, assembleGroup(group, groupValues))
	}
	return payload
}

func assembleGroup(group model.CredentialGroup, values map[string]string) model.CredentialGroupValue {
	out := model.CredentialGroupValue{
		Platform: group.Platform,
		Fields:   make([]model.FieldValue, 0, len(group.Fields)),
	}

	hasRegistrar := false
	for _, field := range group.Fields {
		if field == model.FieldTypeRegistrar {
			hasRegistrar = true
			continue
		}
		out.Fields = append(out.Fields, model.FieldValue{
			Label: string(field),
			Value: values[string(field)],
			Type:  field,
		})
	}

	if hasRegistrar {
		resolution := providers.ResolveRegistrar(values[keyRegistrar], values[keyRegistrarCustom])
		out.Fields = append([]model.FieldValue{{
			Label: keyRegistrar,
			Value: resolution.Value,
			Type:  model.FieldTypeRegistrar,
		}}, out.Fields...)
		if resolution.Kind == providers.ResolutionKnown {
			out.LoginURL = resolution.Provider.LoginURL
		}
	}

	// Fallback only: an explicit registrar-resolved URL always wins.
	if out.LoginURL == "" {
		if url, ok := providers.PlatformLoginURL(group.Platform); ok {
			out.LoginURL = url
		}
	}
	return out
}
