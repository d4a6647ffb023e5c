package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardsmith/primerforge/internal/primer"
)

func TestCheckPrimers(t *testing.T) {
	tests := []struct {
		name       string
		primers    []primer.Primer
		wantErrors int
	}{
		{
			name: "valid rows",
			primers: []primer.Primer{
				{ImageName: "a", TitleText: "A"},
				{ImageName: "b", SummaryText: "B"},
			},
		},
		{
			name: "duplicate image names",
			primers: []primer.Primer{
				{ImageName: "deck", TitleText: "A"},
				{ImageName: "deck", TitleText: "B"},
			},
			wantErrors: 1,
		},
		{
			name: "row without any text",
			primers: []primer.Primer{
				{ImageName: "empty"},
			},
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := checkPrimers(tt.primers)
			require.Len(t, errors, tt.wantErrors)
		})
	}
}
