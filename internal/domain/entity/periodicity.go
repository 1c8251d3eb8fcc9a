package entity

import (
	"strings"

	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

// Periodicity represents how often a habit is expected to be performed.
type Periodicity string

const (
	PeriodicityDaily   Periodicity = "daily"
	PeriodicityWeekly  Periodicity = "weekly"
	PeriodicityMonthly Periodicity = "monthly"
)

// Periodicities lists every supported periodicity in display order.
var Periodicities = []Periodicity{PeriodicityDaily, PeriodicityWeekly, PeriodicityMonthly}

// IsValid reports whether p is one of the supported periodicities.
func (p Periodicity) IsValid() bool {
	return p == PeriodicityDaily ||
		p == PeriodicityWeekly ||
		p == PeriodicityMonthly
}

// String returns the periodicity as stored and displayed.
func (p Periodicity) String() string {
	return string(p)
}

// ParsePeriodicity converts user input such as " Weekly " into a Periodicity.
func ParsePeriodicity(value string) (Periodicity, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "", domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidPeriodicity,
			"habit periodicity must be a non-empty string",
		)
	}

	p := Periodicity(normalized)
	if !p.IsValid() {
		return "", domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidPeriodicity,
			"unsupported periodicity '"+value+"' (expected daily, weekly or monthly)",
		)
	}
	return p, nil
}
