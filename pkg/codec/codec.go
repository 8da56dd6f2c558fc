// Package codec serializes a form configuration to and from the compact,
// URL-safe token carried inside shareable links. The token is base64url
// (standard alphabet with +→- and /→_, padding stripped) over a JSON body
// that uses one/two-letter keys to keep links short.
//
// Decode is deliberately asymmetric: required keys must be present, but
// missing optional keys default (old links keep working) and unknown keys
// are ignored (new links decode on old deployments).
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-credlink/pkg/model"
)

// ErrMalformedLink marks decode-time structural failures: invalid base64url,
// invalid JSON, or a missing required key. Surfaced to the end user as
// "invalid link", distinct from a generic error.
var ErrMalformedLink = errors.New("codec: malformed link")

// compactConfig is the wire shape. Preset groups travel as shorthand codes;
// custom groups travel in full.
type compactConfig struct {
	CN string         `json:"cn"`
	BN string         `json:"bn,omitempty"`
	RE string         `json:"re"`
	P  []string       `json:"p"`
	C  []compactGroup `json:"c"`
	EX int64          `json:"ex,omitempty"`
	U  int            `json:"u,omitempty"`
}

type compactGroup struct {
	N string   `json:"n"`
	F []string `json:"f"`
	S string   `json:"s,omitempty"`
}

// Encode serializes a FormConfig into a URL-safe token.
func Encode(config model.FormConfig) (string, error) {
	compact := compactConfig{
		CN: config.ClientName,
		BN: config.BusinessName,
		RE: config.ReturnEmail,
		P:  config.Presets,
		C:  make([]compactGroup, 0, len(config.Custom)),
	}
	if compact.P == nil {
		compact.P = []string{}
	}
	for _, g := range config.Custom {
		fields := make([]string, 0, len(g.Fields))
		for _, f := range g.Fields {
			fields = append(fields, string(f))
		}
		compact.C = append(compact.C, compactGroup{N: g.Platform, F: fields, S: g.SignupURL})
	}
	if !config.ExpiresAt.IsZero() {
		compact.EX = config.ExpiresAt.Unix()
	}
	if config.RequestUploads {
		compact.U = 1
	}

	body, err := json.Marshal(compact)
	if err != nil {
		return "", fmt.Errorf("codec: marshal config: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(body), nil
}

// Decode parses a token back into a FormConfig. Structural failures wrap
// ErrMalformedLink; missing optional keys default via applyDefaults.
func Decode(token string) (model.FormConfig, error) {
	// Tolerate tokens that kept their padding through transport.
	token = strings.TrimRight(token, "=")

	body, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return model.FormConfig{}, fmt.Errorf("%w: invalid base64url: %v", ErrMalformedLink, err)
	}

	// json.Unmarshal ignores unknown keys, which is the forward-tolerance
	// contract: never fail decode because a newer encoder added a key.
	var compact compactConfig
	if err := json.Unmarshal(body, &compact); err != nil {
		return model.FormConfig{}, fmt.Errorf("%w: invalid payload: %v", ErrMalformedLink, err)
	}

	if err := checkRequired(body); err != nil {
		return model.FormConfig{}, err
	}

	config := model.FormConfig{
		ClientName:  compact.CN,
		ReturnEmail: compact.RE,
		Presets:     compact.P,
		Custom:      make([]model.CredentialGroup, 0, len(compact.C)),
	}
	for _, g := range compact.C {
		fields := make([]model.FieldType, 0, len(g.F))
		for _, f := range g.F {
			fields = append(fields, model.FieldType(f))
		}
		config.Custom = append(config.Custom, model.CredentialGroup{
			Platform:  g.N,
			Fields:    fields,
			SignupURL: g.S,
		})
	}

	applyDefaults(&config, compact)
	return config, nil
}

// checkRequired verifies the presence of required wire keys. Key presence is
// checked on the raw body rather than on zero values so an explicit empty
// string still counts as present.
func checkRequired(body []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return fmt.Errorf("%w: invalid payload: %v", ErrMalformedLink, err)
	}
	for _, required := range []string{"cn", "re", "p", "c"} {
		if _, ok := keys[required]; !ok {
			return fmt.Errorf("%w: missing required key %q", ErrMalformedLink, required)
		}
	}
	return nil
}

// applyDefaults is the single versioned-defaulting step for optional keys
// introduced after the first schema version. Keep all compatibility
// defaulting here rather than scattered through Decode.
func applyDefaults(config *model.FormConfig, compact compactConfig) {
	config.BusinessName = compact.BN
	if config.BusinessName == "" {
		config.BusinessName = compact.CN
	}
	if compact.EX != 0 {
		config.ExpiresAt = time.Unix(compact.EX, 0).UTC()
	}
	config.RequestUploads = compact.U == 1
}
