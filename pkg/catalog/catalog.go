// Package catalog holds the static registry of field metadata and named
// preset credential groups. Presets are compiled in from an embedded YAML
// document; their codes are the stable wire identifiers stored inside links,
// so codes are append-only: once a link referencing a code may be
// outstanding, the code must never be reused for a different meaning.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-credlink/pkg/model"
)

//go:embed presets.yaml
var presetsYAML []byte

// PresetDefinition is one static catalog entry: a shorthand code, the
// credential group it expands to, and optional ordered instruction steps
// rendered before the group's credential-entry slide.
type PresetDefinition struct {
	Code         string                  `yaml:"code"`
	Group        model.CredentialGroup   `yaml:"group"`
	Instructions []model.InstructionStep `yaml:"instructions,omitempty"`
}

var (
	presets    []PresetDefinition
	byCode     map[string]*PresetDefinition
	byPlatform map[string]*PresetDefinition
)

func init() {
	loaded, err := parsePresets(presetsYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded presets: %v", err))
	}
	presets = loaded
	byCode = make(map[string]*PresetDefinition, len(presets))
	byPlatform = make(map[string]*PresetDefinition, len(presets))
	for i := range presets {
		byCode[presets[i].Code] = &presets[i]
		byPlatform[presets[i].Group.Platform] = &presets[i]
	}
}

type presetsDoc struct {
	Presets []presetDoc `yaml:"presets"`
}

type presetDoc struct {
	Code      string   `yaml:"code"`
	Platform  string   `yaml:"platform"`
	Fields    []string `yaml:"fields"`
	SignupURL string   `yaml:"signupUrl"`
	Instructions []struct {
		Title     string `yaml:"title"`
		Body      string `yaml:"body"`
		LinkURL   string `yaml:"linkUrl"`
		LinkLabel string `yaml:"linkLabel"`
		Highlight string `yaml:"highlight"`
		Image     string `yaml:"image"`
	} `yaml:"instructions"`
}

func parsePresets(raw []byte) ([]PresetDefinition, error) {
	var doc presetsDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	out := make([]PresetDefinition, 0, len(doc.Presets))
	seen := make(map[string]struct{}, len(doc.Presets))
	for _, p := range doc.Presets {
		code := strings.TrimSpace(p.Code)
		if code == "" {
			return nil, fmt.Errorf("preset %q: missing code", p.Platform)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("preset code %q: duplicate", code)
		}
		seen[code] = struct{}{}
		if strings.TrimSpace(p.Platform) == "" {
			return nil, fmt.Errorf("preset %q: missing platform", code)
		}

		fields := make([]model.FieldType, 0, len(p.Fields))
		for _, f := range p.Fields {
			ft := model.FieldType(f)
			if !ft.Valid() {
				return nil, fmt.Errorf("preset %q: unknown field type %q", code, f)
			}
			fields = append(fields, ft)
		}

		def := PresetDefinition{
			Code: code,
			Group: model.CredentialGroup{
				Platform:  p.Platform,
				Fields:    fields,
				SignupURL: p.SignupURL,
			},
		}
		for _, step := range p.Instructions {
			def.Instructions = append(def.Instructions, model.InstructionStep{
				Title:     step.Title,
				Body:      step.Body,
				LinkURL:   step.LinkURL,
				LinkLabel: step.LinkLabel,
				Highlight: step.Highlight,
				Image:     step.Image,
			})
		}
		out = append(out, def)
	}
	return out, nil
}

// Presets returns every catalog entry in registry order. The returned slice
// is shared; callers must not mutate it.
func Presets() []PresetDefinition {
	return presets
}

// PresetByCode looks up a preset by its shorthand code. Unknown codes return
// (nil, false); stale codes embedded in old links must not crash the wizard.
func PresetByCode(code string) (*PresetDefinition, bool) {
	p, ok := byCode[code]
	return p, ok
}

// PresetByPlatform looks up a preset by the platform display name of its
// group. Used when resolving instruction slides for an already-expanded
// group list.
func PresetByPlatform(platform string) (*PresetDefinition, bool) {
	p, ok := byPlatform[platform]
	return p, ok
}
