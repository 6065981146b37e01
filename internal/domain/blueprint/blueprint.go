// Package blueprint defines the per-content-type editorial requirements shared
// by the prompt builder and the quality gate. Both derive their thresholds from
// this single table so the requirements embedded in a generation prompt can
// never drift from the rules the article is later judged against.
package blueprint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"copydesk/internal/domain/entity"
)

// Blueprint describes the structural requirements for one content type.
type Blueprint struct {
	// Sections is the ordered section skeleton the article must follow.
	Sections []string `yaml:"sections"`

	// MinWords is the minimum word count of the rendered body.
	MinWords int `yaml:"min_words"`

	// MinInternalLinks is the minimum number of links to the site's own
	// published articles. Lowered to zero at generation time when the link
	// inventory is empty.
	MinInternalLinks int `yaml:"min_internal_links"`

	// MinExternalLinks is the minimum number of citations to external
	// authoritative sources.
	MinExternalLinks int `yaml:"min_external_links"`

	// MinFAQs is the advisory minimum number of FAQ entries.
	MinFAQs int `yaml:"min_faqs"`
}

// Set maps content types to their blueprints.
type Set struct {
	byType map[entity.ContentType]Blueprint
}

// DefaultSet returns the built-in blueprint table.
func DefaultSet() *Set {
	return &Set{byType: map[entity.ContentType]Blueprint{
		entity.ContentTypeRanking: {
			Sections:         []string{"introduction", "methodology", "ranked entries with pros and cons", "comparison summary", "conclusion"},
			MinWords:         800,
			MinInternalLinks: 2,
			MinExternalLinks: 1,
			MinFAQs:          3,
		},
		entity.ContentTypeCareerGuide: {
			Sections:         []string{"introduction", "role overview", "required skills and qualifications", "career progression", "salary expectations", "how to get started", "conclusion"},
			MinWords:         800,
			MinInternalLinks: 2,
			MinExternalLinks: 1,
			MinFAQs:          3,
		},
		entity.ContentTypeListicle: {
			Sections:         []string{"introduction", "numbered list items with a heading per item", "key takeaways"},
			MinWords:         800,
			MinInternalLinks: 2,
			MinExternalLinks: 1,
			MinFAQs:          3,
		},
		entity.ContentTypeGuide: {
			Sections:         []string{"introduction", "background and context", "step-by-step instructions", "common pitfalls", "conclusion"},
			MinWords:         800,
			MinInternalLinks: 2,
			MinExternalLinks: 1,
			MinFAQs:          3,
		},
		entity.ContentTypeFAQ: {
			Sections:         []string{"short introduction", "one heading per question with a direct answer", "further reading"},
			MinWords:         800,
			MinInternalLinks: 2,
			MinExternalLinks: 1,
			MinFAQs:          5,
		},
	}}
}

// For returns the blueprint for the given content type.
// Unknown types fall back to the guide blueprint.
func (s *Set) For(ct entity.ContentType) Blueprint {
	if bp, ok := s.byType[ct]; ok {
		return bp
	}
	return s.byType[entity.ContentTypeGuide]
}

// LoadSet reads a YAML override file and merges it over the defaults.
// Only fields present in the file replace the built-in values; zero values
// keep the default. Unknown content types in the file are rejected.
//
// File format:
//
//	guide:
//	  min_words: 1200
//	  sections: [introduction, deep dive, conclusion]
func LoadSet(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint file: %w", err)
	}

	var overrides map[string]Blueprint
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse blueprint file: %w", err)
	}

	set := DefaultSet()
	for key, override := range overrides {
		ct, err := entity.ParseContentType(key)
		if err != nil {
			return nil, fmt.Errorf("blueprint override: %w", err)
		}
		base := set.byType[ct]
		if len(override.Sections) > 0 {
			base.Sections = override.Sections
		}
		if override.MinWords > 0 {
			base.MinWords = override.MinWords
		}
		if override.MinInternalLinks > 0 {
			base.MinInternalLinks = override.MinInternalLinks
		}
		if override.MinExternalLinks > 0 {
			base.MinExternalLinks = override.MinExternalLinks
		}
		if override.MinFAQs > 0 {
			base.MinFAQs = override.MinFAQs
		}
		set.byType[ct] = base
	}
	return set, nil
}
