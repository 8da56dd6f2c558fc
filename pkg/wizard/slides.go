// Package wizard expands a decoded form configuration into the ordered slide
// sequence driving the client-facing flow, and tracks one respondent session
// over it: field values, uploads, navigation, and per-slide validity.
package wizard

import (
	"fmt"

	"github.com/goliatone/go-credlink/pkg/catalog"
	"github.com/goliatone/go-credlink/pkg/markup"
	"github.com/goliatone/go-credlink/pkg/model"
)

// SlideKind tags the closed set of slide variants.
type SlideKind string

const (
	SlideIntro       SlideKind = "intro"
	SlideInstruction SlideKind = "instruction"
	SlideCredential  SlideKind = "credential"
	SlideUpload      SlideKind = "upload"
	SlideSelfCopy    SlideKind = "selfCopy"
)

// Slide is one entry in the wizard sequence. The slide list is built once
// after decode and is the single source of truth for both progress counts
// and navigation.
type Slide struct {
	Kind SlideKind
	// Platform names the owning service for instruction and credential
	// slides.
	Platform string
	// Step carries the instruction content for SlideInstruction.
	Step *model.InstructionStep
	// GroupIndex points into the resolved group list for SlideCredential;
	// -1 for every other kind.
	GroupIndex int
	// Group is the credential group for SlideCredential.
	Group *model.CredentialGroup
}

// BodyHTML renders an instruction slide's body markup as sanitized HTML.
// Empty for non-instruction slides.
func (s Slide) BodyHTML() string {
	if s.Kind != SlideInstruction || s.Step == nil {
		return ""
	}
	return markup.Emphasis(s.Step.Body)
}

// ResolveGroups expands a config into its ordered credential groups: each
// preset code is looked up in the catalog, codes with no matching entry are
// silently skipped (a retired code must not crash the wizard), then custom
// groups are appended. Order is stable: presets first in listed order,
// customs last in listed order.
func ResolveGroups(config model.FormConfig) []model.CredentialGroup {
	groups := make([]model.CredentialGroup, 0, len(config.Presets)+len(config.Custom))
	for _, code := range config.Presets {
		if preset, ok := catalog.PresetByCode(code); ok {
			groups = append(groups, preset.Group)
		}
	}
	groups = append(groups, config.Custom...)
	return groups
}

// BuildSlides produces the ordered slide sequence for a config and its
// resolved groups: one intro; then per group, its preset instruction steps
// (or one synthesized signup slide when the group has no instructions but
// carries a signup URL) followed by exactly one credential slide; then an
// upload slide when requested; then the terminal self-copy slide.
func BuildSlides(config model.FormConfig, groups []model.CredentialGroup) []Slide {
	slides := []Slide{{Kind: SlideIntro, GroupIndex: -1}}

	for i := range groups {
		group := &groups[i]
		if preset, ok := catalog.PresetByPlatform(group.Platform); ok && len(preset.Instructions) > 0 {
			for j := range preset.Instructions {
				slides = append(slides, Slide{
					Kind:       SlideInstruction,
					Platform:   group.Platform,
					Step:       &preset.Instructions[j],
					GroupIndex: -1,
				})
			}
		} else if group.SignupURL != "" {
			slides = append(slides, Slide{
				Kind:     SlideInstruction,
				Platform: group.Platform,
				Step: &model.InstructionStep{
					Title:     fmt.Sprintf("Sign Up for %s", group.Platform),
					Body:      fmt.Sprintf("Use the link below to create your %s account.", group.Platform),
					LinkURL:   group.SignupURL,
					LinkLabel: fmt.Sprintf("Sign Up for %s", group.Platform),
				},
				GroupIndex: -1,
			})
		}
		slides = append(slides, Slide{
			Kind:       SlideCredential,
			Platform:   group.Platform,
			GroupIndex: i,
			Group:      group,
		})
	}

	if config.RequestUploads {
		slides = append(slides, Slide{Kind: SlideUpload, GroupIndex: -1})
	}
	slides = append(slides, Slide{Kind: SlideSelfCopy, GroupIndex: -1})
	return slides
}
