package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ReportCategory is the closed set of incident categories
type ReportCategory string

const (
	CategoryDengue   ReportCategory = "DENGUE"
	CategoryBuraco   ReportCategory = "BURACO"
	CategoryMatoAlto ReportCategory = "MATOALTO"
	CategoryLixo     ReportCategory = "LIXO"
)

// AllCategories lists categories in their ordinal order
var AllCategories = []ReportCategory{CategoryDengue, CategoryBuraco, CategoryMatoAlto, CategoryLixo}

// ParseReportCategory parses a category name case-insensitively. Ordinal
// numbers ("0".."3") are accepted as well, matching older mobile clients.
func ParseReportCategory(value string) (ReportCategory, bool) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if n >= 0 && n < len(AllCategories) {
			return AllCategories[n], true
		}
		return "", false
	}
	candidate := ReportCategory(strings.ToUpper(value))
	if candidate.Valid() {
		return candidate, true
	}
	return "", false
}

// Valid reports whether c is one of the known categories
func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryDengue, CategoryBuraco, CategoryMatoAlto, CategoryLixo:
		return true
	}
	return false
}

func (c ReportCategory) String() string { return string(c) }

// UnmarshalJSON accepts either the category name or its ordinal number.
// Unknown values decode to the empty category and are rejected by validation.
func (c *ReportCategory) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		*c = ""
		return nil
	}
	parsed, _ := ParseReportCategory(text)
	*c = parsed
	return nil
}

// ReportStatus is the closed set of report lifecycle states
type ReportStatus string

const (
	StatusPendingModeration ReportStatus = "PENDINGMODERATION"
	StatusApproved          ReportStatus = "APPROVED"
	StatusRejected          ReportStatus = "REJECTED"
	StatusNeedsReview       ReportStatus = "NEEDSREVIEW"
	StatusResolved          ReportStatus = "RESOLVED"
)

// AllStatuses lists statuses in their ordinal order
var AllStatuses = []ReportStatus{
	StatusPendingModeration,
	StatusApproved,
	StatusRejected,
	StatusNeedsReview,
	StatusResolved,
}

// ParseReportStatus parses a status name case-insensitively; ordinal numbers
// are accepted as well.
func ParseReportStatus(value string) (ReportStatus, bool) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if n >= 0 && n < len(AllStatuses) {
			return AllStatuses[n], true
		}
		return "", false
	}
	candidate := ReportStatus(strings.ToUpper(value))
	if candidate.Valid() {
		return candidate, true
	}
	return "", false
}

// Valid reports whether s is one of the known statuses
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPendingModeration, StatusApproved, StatusRejected, StatusNeedsReview, StatusResolved:
		return true
	}
	return false
}

// IsPublic reports whether reports in this status may appear in the public feed
func (s ReportStatus) IsPublic() bool {
	switch s {
	case StatusApproved:
		return true
	case StatusPendingModeration, StatusRejected, StatusNeedsReview, StatusResolved:
		return false
	}
	return false
}

// AwaitsModeration reports whether the worker should pick the report up.
// NeedsReview is deliberately excluded: those wait for a human.
func (s ReportStatus) AwaitsModeration() bool {
	switch s {
	case StatusPendingModeration:
		return true
	case StatusApproved, StatusRejected, StatusNeedsReview, StatusResolved:
		return false
	}
	return false
}

func (s ReportStatus) String() string { return string(s) }
