package devutil

import (
	"testing"

	"course-catalog/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	course := domain.Course{
		ID:        "c01",
		Title:     "Foundations of Biology",
		Category:  "Biology",
		Price:     "Free",
		Resources: []domain.Resource{{Name: "Syllabus", Href: "#"}},
	}

	testCases := []struct {
		name     string
		input    any
		keys     []string
		expected map[string]any
	}{
		{
			name:     "pick from course",
			input:    course,
			keys:     []string{"id", "title"},
			expected: map[string]any{"id": "c01", "title": "Foundations of Biology"},
		},
		{
			name:     "pick from map converts numbers",
			input:    map[string]any{"count": 2, "state": "live"},
			keys:     []string{"count"},
			expected: map[string]any{"count": float64(2)},
		},
		{
			name:     "nil input",
			input:    nil,
			keys:     []string{"id"},
			expected: map[string]any{},
		},
		{
			name:     "no keys",
			input:    course,
			keys:     []string{},
			expected: map[string]any{},
		},
		{
			name:     "unknown key",
			input:    course,
			keys:     []string{"nonexistent"},
			expected: map[string]any{},
		},
		{
			name:     "not an object",
			input:    []string{"a"},
			keys:     []string{"a"},
			expected: map[string]any{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Pick(tc.input, tc.keys...))
		})
	}
}

func TestPickLine(t *testing.T) {
	course := domain.Course{
		ID:        "c01",
		Title:     "Foundations of Biology",
		Resources: []domain.Resource{{Name: "Syllabus", Href: "#"}},
	}

	assert.Equal(t, "title=Foundations of Biology id=c01", PickLine(course, "title", "id"))
	assert.Equal(t, `id=c01 resources=[{"href":"#","name":"Syllabus"}]`, PickLine(course, "id", "missing", "resources"))
	assert.Equal(t, "", PickLine(course))
}
