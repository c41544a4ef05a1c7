package criteria

import (
	"fmt"
	"math"
	"strings"
)

// ExperienceLevel is the seniority band a hiring team asks for.
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

// Band is a half-open range of experience years [Min, Max).
type Band struct {
	Min int
	Max int
}

var bands = map[ExperienceLevel]Band{
	LevelEntry:  {Min: 0, Max: 2},
	LevelMid:    {Min: 2, Max: 5},
	LevelSenior: {Min: 5, Max: 8},
	LevelLead:   {Min: 8, Max: math.MaxInt},
}

// ParseExperienceLevel accepts a level name in any case.
func ParseExperienceLevel(raw string) (ExperienceLevel, error) {
	level := ExperienceLevel(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := bands[level]; !ok {
		return "", fmt.Errorf("%w: unknown experience level %q (want entry, mid, senior or lead)", ErrInvalidCriteria, raw)
	}
	return level, nil
}

// Band returns the year range of the level. Unknown levels yield an empty
// band that contains nothing.
func (l ExperienceLevel) Band() Band {
	return bands[l]
}

// Contains reports whether years fall inside the band.
func (b Band) Contains(years int) bool {
	return years >= b.Min && years < b.Max
}

// Position reports where years sit relative to the band: -1 below, 0 inside,
// 1 above.
func (b Band) Position(years int) int {
	switch {
	case years < b.Min:
		return -1
	case years >= b.Max:
		return 1
	default:
		return 0
	}
}
