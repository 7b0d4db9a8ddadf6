package utils

import (
	"math"
	"testing"
	"time"

	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundingBox(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *models.BoundingBox
	}{
		{
			name:  "valid",
			value: "-46.8,-23.7,-46.4,-23.4",
			want:  &models.BoundingBox{MinLng: -46.8, MinLat: -23.7, MaxLng: -46.4, MaxLat: -23.4},
		},
		{
			name:  "spaces around values",
			value: " -46.8 , -23.7, -46.4 ,-23.4",
			want:  &models.BoundingBox{MinLng: -46.8, MinLat: -23.7, MaxLng: -46.4, MaxLat: -23.4},
		},
		{name: "three values", value: "1,2,3", want: nil},
		{name: "five values", value: "1,2,3,4,5", want: nil},
		{name: "not a number", value: "a,2,3,4", want: nil},
		{name: "empty", value: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBoundingBox(tt.value))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	got := ParseTimestamp("2024-05-01T10:00:00Z")
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))

	withOffset := ParseTimestamp("2024-05-01T07:00:00-03:00")
	require.NotNil(t, withOffset)
	assert.True(t, withOffset.Equal(*got))

	assert.Nil(t, ParseTimestamp("yesterday"))
	assert.Nil(t, ParseTimestamp(""))
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name             string
		page, pageSize   int
		wantPage, wantPS int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative", -3, -1, 1, 20},
		{"kept", 3, 50, 3, 50},
		{"capped", 2, 500, 2, 100},
		{"huge page", math.MaxInt, 100, MaxPage, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPS, size)
		})
	}
}
