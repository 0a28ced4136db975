// Package strength classifies passwords into coarse strength tiers.
package strength

import (
	"strings"
	"unicode/utf8"
)

// Tier is a coarse strength classification.
type Tier int

// Strength tiers, weakest first.
const (
	Weak Tier = iota
	Medium
	Strong
)

// Recommendations emitted by Evaluate.
const (
	RecommendNumber    = "Add a number."
	RecommendLowercase = "Add lowercase letters."
	RecommendUppercase = "Add uppercase letters."
	RecommendSpecial   = "Add special characters."
	RecommendLength    = "Increase the password length to at least 8 characters."
)

// SpecialChars is the set counted as special characters.
const SpecialChars = "!@#$%^&*/-+."

const (
	minLength    = 8
	strongLength = 12
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case Strong:
		return "Strong"
	case Medium:
		return "Medium"
	default:
		return "Weak"
	}
}

// Label returns the human-facing tier label.
func (t Tier) Label() string {
	return t.String() + " password"
}

// Color returns the presentation color hint for the tier.
func (t Tier) Color() string {
	switch t {
	case Strong:
		return "green"
	case Medium:
		return "yellow"
	default:
		return "red"
	}
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(name string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "weak":
		return Weak, true
	case "medium":
		return Medium, true
	case "strong":
		return Strong, true
	default:
		return Weak, false
	}
}

// Result is the outcome of a strength evaluation.
type Result struct {
	Tier            Tier
	Score           int
	Recommendations []string
}

// Evaluate scores password by character-class diversity and length.
func Evaluate(password string) Result {
	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case isDigit(r):
			hasDigit = true
		case isLower(r):
			hasLower = true
		case isUpper(r):
			hasUpper = true
		case isSpecial(r):
			hasSpecial = true
		}
	}

	var res Result
	checks := []struct {
		present bool
		advice  string
	}{
		{hasDigit, RecommendNumber},
		{hasLower, RecommendLowercase},
		{hasUpper, RecommendUppercase},
		{hasSpecial, RecommendSpecial},
	}
	for _, c := range checks {
		if c.present {
			res.Score++
			continue
		}
		res.Recommendations = append(res.Recommendations, c.advice)
	}

	length := utf8.RuneCountInString(password)
	if length < minLength {
		res.Recommendations = append(res.Recommendations, RecommendLength)
	}

	switch {
	case length >= strongLength && res.Score >= 3:
		res.Tier = Strong
	case length >= minLength && res.Score >= 2:
		res.Tier = Medium
	default:
		res.Tier = Weak
	}
	return res
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isSpecial(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(SpecialChars, byte(r)) >= 0
}
