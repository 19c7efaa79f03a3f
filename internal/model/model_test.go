package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampTitle(t *testing.T) {
	assert.Equal(t, "short", ClampTitle("short"))
	assert.Equal(t, strings.Repeat("a", MaxTitleLen), ClampTitle(strings.Repeat("a", MaxTitleLen)))

	// counts runes, not bytes
	got := ClampTitle(strings.Repeat("ü", 400))
	assert.Equal(t, MaxTitleLen, len([]rune(got)))
	assert.Equal(t, strings.Repeat("ü", MaxTitleLen), got)
}

func TestExamDateStrings(t *testing.T) {
	p := ParsedSyllabusContent{ExamDates: []ExamDate{
		{Name: "Midterm", Date: "2025-03-20"},
		{Name: "Quiz", Date: ""},
		{Date: " 2025-05-01 "},
	}}
	assert.Equal(t, []string{"2025-03-20", "2025-05-01"}, p.ExamDateStrings())
	assert.Empty(t, (&ParsedSyllabusContent{}).ExamDateStrings())
}
