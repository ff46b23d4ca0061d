package catalog

import (
	"testing"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestions_CoverStepsOneToSix(t *testing.T) {
	require.Len(t, Questions, 6)

	seen := map[int]string{}
	for _, q := range Questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Label)
		assert.NotEmpty(t, q.Options)
		assert.GreaterOrEqual(t, q.Step, 1)
		assert.LessOrEqual(t, q.Step, 6)
		_, dup := seen[q.Step]
		assert.False(t, dup, "duplicate step %d", q.Step)
		seen[q.Step] = q.ID

		// Multi-select questions wait for an explicit continue
		if q.MultiSelect {
			assert.False(t, q.AutoAdvance)
		}
	}
}

func TestQuestionLookups(t *testing.T) {
	q, ok := QuestionByID(domain.QuestionPalette)
	require.True(t, ok)
	assert.Equal(t, 6, q.Step)

	q, ok = QuestionByStep(2)
	require.True(t, ok)
	assert.Equal(t, domain.QuestionValeurs, q.ID)

	_, ok = QuestionByID("unknown")
	assert.False(t, ok)

	_, ok = QuestionByStep(9)
	assert.False(t, ok)
}

func TestValidateAnswer_SingleSelect(t *testing.T) {
	require.NoError(t, ValidateAnswer(domain.QuestionAmbiance, "minimaliste"))

	err := ValidateAnswer(domain.QuestionAmbiance, "brutaliste")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	// Comma sets are not valid for single-select questions
	err = ValidateAnswer(domain.QuestionAmbiance, "minimaliste,audacieux")
	require.Error(t, err)
}

func TestValidateAnswer_MultiSelect(t *testing.T) {
	require.NoError(t, ValidateAnswer(domain.QuestionValeurs, "confiance"))
	require.NoError(t, ValidateAnswer(domain.QuestionValeurs, "confiance,innovation,proximite"))

	err := ValidateAnswer(domain.QuestionValeurs, "confiance,,innovation")
	require.Error(t, err)

	err = ValidateAnswer(domain.QuestionValeurs, "confiance,imagination")
	require.Error(t, err)
}

func TestValidateAnswer_Unknowns(t *testing.T) {
	err := ValidateAnswer("budget", "high")
	require.Error(t, err)

	err = ValidateAnswer(domain.QuestionTypo, "")
	require.Error(t, err)
}

func TestInspirationExists(t *testing.T) {
	assert.True(t, InspirationExists("insp-01"))
	assert.True(t, InspirationExists("insp-12"))
	assert.False(t, InspirationExists("insp-99"))
}
