package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightSearchTerms(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"basic match", "Fresh Rice Paddy", "rice", "Fresh <mark>Rice</mark> Paddy"},
		{"case preserved", "RICE and rice", "Rice", "<mark>RICE</mark> and <mark>rice</mark>"},
		{"no match", "Yellow Maize", "rice", "Yellow Maize"},
		{"empty query", "Fresh Rice", "", "Fresh Rice"},
		{"empty text", "", "rice", ""},
		{"regex metacharacters literal", "Premium (Grade A)", "(grade a)", "Premium <mark>(Grade A)</mark>"},
		{"partial word", "Ricefield harvest", "rice", "<mark>Rice</mark>field harvest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightSearchTerms(tt.text, tt.query))
		})
	}
}
