package utils

import (
	"strings"
	"testing"

	"schoolportal/config"
	examModels "schoolportal/models/exam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.AppConfig = &config.Config{BaseURL: "http://localhost:5051"}
}

func TestFormatQuestionText(t *testing.T) {
	out := string(FormatQuestionText(`Solve $$x^2 = 4$$ for x`))
	assert.Contains(t, out, `<span class="math display">\[x^2 = 4\]</span>`)

	out = string(FormatQuestionText(`value of $\pi$ approx`))
	assert.Contains(t, out, `<span class="math inline">\(\pi\)</span>`)

	out = string(FormatQuestionText("ગુજરાતી પ્રશ્ન 42"))
	assert.Contains(t, out, `<span class="gujarati">`)
	assert.Contains(t, out, "ગુજરાતી")

	// Raw HTML in question text must not survive as markup.
	out = string(FormatQuestionText(`<script>bad()</script>`))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "A", OptionLabel(0))
	assert.Equal(t, "D", OptionLabel(3))
	assert.Equal(t, "H", OptionLabel(7))
	assert.Equal(t, "?", OptionLabel(8))
	assert.Equal(t, "?", OptionLabel(-1))
}

func renderItems() []PaperRenderItem {
	return []PaperRenderItem{
		{
			Marks: 2,
			MCQ: examModels.MCQ{
				QuestionText: "What is $2+2$?",
				Explanation:  "Basic addition.",
				Options: []examModels.MCQOption{
					{OptionText: "3", OrderIndex: 0},
					{OptionText: "4", IsCorrect: true, OrderIndex: 1},
					{OptionText: "5", OrderIndex: 2},
				},
			},
		},
	}
}

func TestBuildPaperHTMLWithAnswers(t *testing.T) {
	html, err := BuildPaperHTML(PaperRenderData{
		Heading:             "Unit Test 1",
		StandardName:        "Standard 8",
		SubjectNames:        []string{"Maths"},
		TotalMarks:          2,
		IncludeAnswers:      true,
		IncludeExplanations: true,
		Items:               renderItems(),
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Unit Test 1")
	assert.Contains(t, html, "Standard 8")
	assert.Contains(t, html, "Total Marks: 2")
	// The correct option carries the marker class, wrong ones do not.
	assert.Contains(t, html, `class="option correct"`)
	assert.Contains(t, html, "(B) 4")
	assert.Contains(t, html, "Basic addition.")
	assert.Contains(t, html, `math inline`)
}

func TestBuildPaperHTMLWithoutAnswers(t *testing.T) {
	html, err := BuildPaperHTML(PaperRenderData{
		Heading: "Blank Paper",
		Items:   renderItems(),
	})
	require.NoError(t, err)

	assert.NotContains(t, html, `option correct`)
	assert.NotContains(t, html, "Basic addition.")
	assert.True(t, strings.Contains(html, "(A) 3") && strings.Contains(html, "(C) 5"))
}
