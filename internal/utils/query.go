package utils

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sfsergim/CivicReport/internal/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*pageSize within int
	MaxPage = math.MaxInt / MaxPageSize
)

// ParseBoundingBox parses "minLng,minLat,maxLng,maxLat". Anything else,
// including the wrong number of values, yields nil.
func ParseBoundingBox(value string) *models.BoundingBox {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return nil
	}

	var coords [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil
		}
		coords[i] = f
	}

	return &models.BoundingBox{
		MinLng: coords[0],
		MinLat: coords[1],
		MaxLng: coords[2],
		MaxLat: coords[3],
	}
}

// ParseTimestamp parses an RFC 3339 timestamp; blank or malformed input
// yields nil.
func ParseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil
	}
	return &t
}

// NormalizePagination clamps page and page size to sane values
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
