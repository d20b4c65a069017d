package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReportDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "Data com dia de um dígito - sem zero à esquerda",
			raw:      "20240105",
			expected: "Jan 5",
		},
		{
			name:     "Data com dia de dois dígitos",
			raw:      "20241225",
			expected: "Dec 25",
		},
		{
			name:     "Valor fora do formato esperado é devolvido sem alteração",
			raw:      "2024-01-05",
			expected: "2024-01-05",
		},
		{
			name:     "Valor vazio",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatReportDate(tt.raw))
		})
	}
}
