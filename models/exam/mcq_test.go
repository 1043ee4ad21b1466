package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func options(correct ...bool) []MCQOption {
	opts := make([]MCQOption, 0, len(correct))
	for i, c := range correct {
		opts = append(opts, MCQOption{OptionText: "opt", IsCorrect: c, OrderIndex: i})
	}
	return opts
}

func TestValidateOptions(t *testing.T) {
	assert.ErrorIs(t, ValidateOptions(nil), ErrTooFewOptions)
	assert.ErrorIs(t, ValidateOptions(options(true)), ErrTooFewOptions)
	assert.ErrorIs(t, ValidateOptions(options(false, false)), ErrCorrectOptionCount)
	assert.ErrorIs(t, ValidateOptions(options(true, true, false)), ErrCorrectOptionCount)
	assert.NoError(t, ValidateOptions(options(false, true)))
	assert.NoError(t, ValidateOptions(options(true, false, false, false, false, false)))
}

func TestCorrectIndex(t *testing.T) {
	m := MCQ{Options: options(false, false, true, false)}
	assert.Equal(t, 2, m.CorrectIndex())

	m = MCQ{Options: options(true, false)}
	assert.Equal(t, 0, m.CorrectIndex())

	m = MCQ{Options: options(false, false)}
	assert.Equal(t, -1, m.CorrectIndex())

	m = MCQ{}
	assert.Equal(t, -1, m.CorrectIndex())
}
