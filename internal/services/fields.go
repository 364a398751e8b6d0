package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

// Sentinel values for fields the patterns could not find. These are part of
// the output contract, not errors.
const (
	ExperienceUnspecified = "unspecified"
	FieldNotFound         = "not found"
)

// FieldExtractor derives structured fields from a resume's plain text.
type FieldExtractor interface {
	ProfileOf(text string) models.Profile
	ExperienceOf(text string) string
	EmailOf(text string) string
	PhoneOf(text string) string
}

// experienceRule pairs a pattern with the formatter for its capture. Rules are
// evaluated in order and the first match wins, so more specific patterns must
// come first.
type experienceRule struct {
	pattern *regexp.Regexp
	format  func(match []string) string
}

var yearsOf = func(match []string) string { return match[1] + " years" }

var experienceRules = []experienceRule{
	{regexp.MustCompile(`(\d+\.?\d*)\s*\+?\s*years?.*experience`), yearsOf},
	{regexp.MustCompile(`over\s+(\d+\.?\d*)\s*years?`), yearsOf},
	{regexp.MustCompile(`(\d+)\s*yrs?\s*exp`), yearsOf},
}

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	// Optional country/trunk prefix, then 10 digits with optional interior
	// whitespace or hyphens.
	phonePattern    = regexp.MustCompile(`(?:\+91|91|0)?[\s-]?(?:\d[\s-]?){10}`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

type fieldExtractor struct{}

func NewFieldExtractor() FieldExtractor {
	return &fieldExtractor{}
}

// ProfileOf implements FieldExtractor.
func (f *fieldExtractor) ProfileOf(text string) models.Profile {
	return models.Profile{
		Experience: f.ExperienceOf(text),
		Email:      f.EmailOf(text),
		Phone:      f.PhoneOf(text),
	}
}

// ExperienceOf implements FieldExtractor.
func (f *fieldExtractor) ExperienceOf(text string) string {
	lowered := strings.ToLower(text)
	for _, rule := range experienceRules {
		if match := rule.pattern.FindStringSubmatch(lowered); match != nil {
			return rule.format(match)
		}
	}
	return ExperienceUnspecified
}

// EmailOf implements FieldExtractor.
func (f *fieldExtractor) EmailOf(text string) string {
	if match := emailPattern.FindString(text); match != "" {
		return match
	}
	return FieldNotFound
}

// PhoneOf implements FieldExtractor. The first candidate with at least 10
// digits wins, truncated to its last 10 so prefixed numbers lose the country
// code.
func (f *fieldExtractor) PhoneOf(text string) string {
	for _, match := range phonePattern.FindAllString(text, -1) {
		digits := nonDigitPattern.ReplaceAllString(match, "")
		if len(digits) >= 10 {
			return digits[len(digits)-10:]
		}
	}
	return FieldNotFound
}
