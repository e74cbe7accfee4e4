package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		name       string
		input      []any
		nameFields []string
		expected   []string
	}{
		{
			name:       "plain strings trimmed",
			input:      []any{" Go ", "Python"},
			nameFields: []string{"skill_name"},
			expected:   []string{"Go", "Python"},
		},
		{
			name:       "objects use name field",
			input:      []any{map[string]any{"skill_name": "Kubernetes"}},
			nameFields: []string{"skill_name"},
			expected:   []string{"Kubernetes"},
		},
		{
			name: "mixed strings and objects keep order",
			input: []any{
				"SQL",
				map[string]any{"skill_name": "Go"},
				"Docker",
			},
			nameFields: []string{"skill_name"},
			expected:   []string{"SQL", "Go", "Docker"},
		},
		{
			name: "name field fallback order",
			input: []any{
				map[string]any{"name": "Terraform"},
				map[string]any{"skill_id": "skill#42"},
			},
			nameFields: []string{"skill_name", "name", "skill_id"},
			expected:   []string{"Terraform", "skill#42"},
		},
		{
			name:       "blank entries dropped",
			input:      []any{"", "   ", map[string]any{"skill_name": " "}, map[string]any{"other": "x"}},
			nameFields: []string{"skill_name"},
			expected:   []string{},
		},
		{
			name:       "non string non object dropped",
			input:      []any{float64(3), true, nil, "kept"},
			nameFields: []string{"skill_name"},
			expected:   []string{"kept"},
		},
		{
			name:       "duplicates are not removed",
			input:      []any{"Go", "Go"},
			nameFields: []string{"skill_name"},
			expected:   []string{"Go", "Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StringList(tt.input, tt.nameFields...))
		})
	}
}

func TestEnsureList(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []any
	}{
		{"list passes through", []any{"a", "b"}, []any{"a", "b"}},
		{"json array string", `["Built APIs", "Led team"]`, []any{"Built APIs", "Led team"}},
		{"comma split fallback", "Built APIs, Led team , ", []any{"Built APIs", "Led team"}},
		{"plain string single item", "Shipped features", []any{"Shipped features"}},
		{"nil yields nil", nil, nil},
		{"number yields nil", float64(7), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnsureList(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"iso date", "2023-05-01", "2023-05-01", true},
		{"slash iso", "2023/05/01", "2023-05-01", true},
		{"ambiguous resolves day first", "03/04/2024", "2024-04-03", true},
		{"single digit day and month", "3/4/2024", "2024-04-03", true},
		{"day first with dashes", "25-12-2022", "2022-12-25", true},
		{"single digit with dashes", "3-4-2024", "2024-04-03", true},
		{"dotted day first", "2.1.2024", "2024-01-02", true},
		{"unambiguous month first accepted", "12/25/2022", "2022-12-25", true},
		{"written out", "5 January 2021", "2021-01-05", true},
		{"month year", "January 2021", "2021-01-01", true},
		{"numeric month year", "01/2024", "2024-01-01", true},
		{"single digit month year", "4/2024", "2024-04-01", true},
		{"year only", "2020", "2020-01-01", true},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
		{"garbage", "soon", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
