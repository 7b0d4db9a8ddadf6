package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "already E.164", phone: "+5511990000000", want: "+5511990000000"},
		{name: "surrounding whitespace", phone: "  +5511990000001 ", want: "+5511990000001"},
		{name: "national format", phone: "(21) 98765-4321", want: "+5521987654321"},
		{name: "foreign number", phone: "+1 650 253 0000", want: "+16502530000"},
		{name: "unparseable kept as is", phone: "not-a-phone", want: "not-a-phone"},
		{name: "blank", phone: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.phone))
		})
	}
}
