package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DisplayMode selects how the gallery grid renders a profile.
type DisplayMode string

const (
	DisplayModeGrid     DisplayMode = "grid"
	DisplayModeList     DisplayMode = "list"
	DisplayModeShowcase DisplayMode = "showcase"
)

// String returns the string representation of the display mode.
func (m DisplayMode) String() string {
	return string(m)
}

// Project is a user-defined entry shown on the profile page.
type Project struct {
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// PreferencesRecord holds a profile's saved customization. Every field
// except UpdatedAt is optional; an absent field means "unset" and the
// front-end falls back to its defaults. UpdatedAt is stamped by the
// persistence layer on every write and is never taken from the caller.
type PreferencesRecord struct {
	ColorTheme     string      `json:"colorTheme,omitempty"`
	Font           string      `json:"font,omitempty"`
	DisplayMode    DisplayMode `json:"displayMode,omitempty"`
	Language       string      `json:"language,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	FeaturedTokens []string    `json:"featuredTokens,omitempty"`
	Projects       []Project   `json:"projects,omitempty"`
	SectionOrder   []string    `json:"sectionOrder,omitempty"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// PreferencesPatch is a field-subset update. A nil field leaves the
// stored value untouched; a non-nil field replaces it wholesale (slices
// included — there is no element-level merge).
type PreferencesPatch struct {
	ColorTheme     *string      `json:"colorTheme,omitempty"`
	Font           *string      `json:"font,omitempty"`
	DisplayMode    *DisplayMode `json:"displayMode,omitempty"`
	Language       *string      `json:"language,omitempty"`
	Bio            *string      `json:"bio,omitempty"`
	FeaturedTokens *[]string    `json:"featuredTokens,omitempty"`
	Projects       *[]Project   `json:"projects,omitempty"`
	SectionOrder   *[]string    `json:"sectionOrder,omitempty"`
}

// IsZero reports whether the patch names no fields at all.
func (p *PreferencesPatch) IsZero() bool {
	return p.ColorTheme == nil && p.Font == nil && p.DisplayMode == nil &&
		p.Language == nil && p.Bio == nil && p.FeaturedTokens == nil &&
		p.Projects == nil && p.SectionOrder == nil
}

// Fields returns the JSON names of the fields the patch sets.
func (p *PreferencesPatch) Fields() []string {
	var fields []string
	for name, set := range map[string]bool{
		"colorTheme":     p.ColorTheme != nil,
		"font":           p.Font != nil,
		"displayMode":    p.DisplayMode != nil,
		"language":       p.Language != nil,
		"bio":            p.Bio != nil,
		"featuredTokens": p.FeaturedTokens != nil,
		"projects":       p.Projects != nil,
		"sectionOrder":   p.SectionOrder != nil,
	} {
		if set {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

// Apply overlays the patch onto r. Fields not named by the patch are
// preserved; named fields are replaced.
func (p *PreferencesPatch) Apply(r *PreferencesRecord) {
	if p.ColorTheme != nil {
		r.ColorTheme = *p.ColorTheme
	}
	if p.Font != nil {
		r.Font = *p.Font
	}
	if p.DisplayMode != nil {
		r.DisplayMode = *p.DisplayMode
	}
	if p.Language != nil {
		r.Language = *p.Language
	}
	if p.Bio != nil {
		r.Bio = *p.Bio
	}
	if p.FeaturedTokens != nil {
		r.FeaturedTokens = *p.FeaturedTokens
	}
	if p.Projects != nil {
		r.Projects = *p.Projects
	}
	if p.SectionOrder != nil {
		r.SectionOrder = *p.SectionOrder
	}
}

// PatchForField builds a single-field patch from a field's JSON name
// and its raw JSON value. Unknown field names and values of the wrong
// shape are rejected.
func PatchForField(field string, value json.RawMessage) (*PreferencesPatch, error) {
	doc, err := json.Marshal(map[string]json.RawMessage{field: value})
	if err != nil {
		return nil, fmt.Errorf("encode field %q: %w", field, err)
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()

	var patch PreferencesPatch
	if err := dec.Decode(&patch); err != nil {
		return nil, fmt.Errorf("unknown or malformed preference field %q", field)
	}
	return &patch, nil
}
