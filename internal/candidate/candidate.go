// Package candidate holds the candidate profile model and the pool loader
// that normalizes raw records into it.
package candidate

import (
	"errors"
	"fmt"
	"strings"
)

// BadgeKind is a verification badge a candidate earned.
type BadgeKind string

const (
	BadgeSkill    BadgeKind = "skill"
	BadgeIdentity BadgeKind = "identity"
	BadgeRoleplay BadgeKind = "roleplay"
)

var (
	// ErrInvalidCandidate indicates a Candidate failed validation.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrEmptyID indicates the candidate identifier is blank.
	ErrEmptyID = errors.New("candidate id cannot be empty")

	// ErrNegativeExperience indicates experience years below zero.
	ErrNegativeExperience = errors.New("experience years cannot be negative")
)

// ParseBadgeKind maps a raw badge name onto a known kind.
func ParseBadgeKind(raw string) (BadgeKind, bool) {
	switch BadgeKind(strings.ToLower(strings.TrimSpace(raw))) {
	case BadgeSkill:
		return BadgeSkill, true
	case BadgeIdentity:
		return BadgeIdentity, true
	case BadgeRoleplay:
		return BadgeRoleplay, true
	default:
		return "", false
	}
}

// Skill is a labeled skill tag.
type Skill struct {
	Label string `json:"label" mapstructure:"label"`
}

// Skills groups technical and soft skill tags.
type Skills struct {
	Technical []Skill `json:"technical" mapstructure:"technical"`
	Soft      []Skill `json:"soft" mapstructure:"soft"`
}

// Labels returns technical labels followed by soft labels.
func (s Skills) Labels() []string {
	labels := make([]string, 0, len(s.Technical)+len(s.Soft))
	for _, skill := range s.Technical {
		labels = append(labels, skill.Label)
	}
	for _, skill := range s.Soft {
		labels = append(labels, skill.Label)
	}
	return labels
}

// Location is where a candidate is based.
type Location struct {
	City    string `json:"city" mapstructure:"city"`
	Country string `json:"country" mapstructure:"country"`
	Remote  bool   `json:"remote" mapstructure:"remote"`
}

// Candidate is a single profile in a pool. Values are treated as read-only
// by every consumer.
type Candidate struct {
	ID                  string      `json:"id" mapstructure:"id"`
	Title               string      `json:"title" mapstructure:"title"`
	ExperienceYears     int         `json:"experienceYears" mapstructure:"experienceYears"`
	Skills              Skills      `json:"skills" mapstructure:"skills"`
	Industries          []string    `json:"industries" mapstructure:"industries"`
	CompanyStageHistory []string    `json:"companyStageHistory" mapstructure:"companyStageHistory"`
	Achievements        []string    `json:"achievements" mapstructure:"achievements"`
	CulturalValues      []string    `json:"culturalValues" mapstructure:"culturalValues"`
	VerificationBadges  []BadgeKind `json:"verificationBadges" mapstructure:"verificationBadges"`
	Location            Location    `json:"location" mapstructure:"location"`
}

// Validate checks the invariants a candidate must hold before scoring.
func (c *Candidate) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}

	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyID)
	}

	if c.ExperienceYears < 0 {
		return fmt.Errorf("%w: %w (%d)", ErrInvalidCandidate, ErrNegativeExperience, c.ExperienceYears)
	}

	return nil
}

// Normalized returns a copy with empty sets instead of nil ones, duplicate
// labels removed (case-insensitive, first one wins) and unknown badges
// dropped.
func (c Candidate) Normalized() Candidate {
	c.ID = strings.TrimSpace(c.ID)
	c.Title = strings.TrimSpace(c.Title)
	c.Skills.Technical = uniqueSkills(c.Skills.Technical)
	c.Skills.Soft = uniqueSkills(c.Skills.Soft)
	c.Industries = uniqueStrings(c.Industries)
	c.CompanyStageHistory = uniqueStrings(c.CompanyStageHistory)
	c.CulturalValues = uniqueStrings(c.CulturalValues)
	c.VerificationBadges = knownBadges(c.VerificationBadges)

	achievements := make([]string, 0, len(c.Achievements))
	for _, achievement := range c.Achievements {
		if trimmed := strings.TrimSpace(achievement); trimmed != "" {
			achievements = append(achievements, trimmed)
		}
	}
	c.Achievements = achievements

	return c
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, value := range in {
		trimmed := strings.TrimSpace(value)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}

func uniqueSkills(in []Skill) []Skill {
	labels := make([]string, 0, len(in))
	for _, skill := range in {
		labels = append(labels, skill.Label)
	}

	unique := uniqueStrings(labels)
	out := make([]Skill, 0, len(unique))
	for _, label := range unique {
		out = append(out, Skill{Label: label})
	}
	return out
}

func knownBadges(in []BadgeKind) []BadgeKind {
	seen := make(map[BadgeKind]bool, len(in))
	out := make([]BadgeKind, 0, len(in))
	for _, badge := range in {
		kind, ok := ParseBadgeKind(string(badge))
		if !ok || seen[kind] {
			continue
		}
		seen[kind] = true
		out = append(out, kind)
	}
	return out
}
