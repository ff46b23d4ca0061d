package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
)

func TestStepNavigation(t *testing.T) {
	s := New("session-1")
	assert.Equal(t, StepIntro, s.Step)

	// PrevStep at the intro stays put
	s.PrevStep()
	assert.Equal(t, StepIntro, s.Step)

	// Walk forward through every step
	for i := 1; i <= StepSummary; i++ {
		s.NextStep()
		assert.Equal(t, i, s.Step)
	}
	assert.True(t, s.Completed)

	// NextStep at the summary is a no-op
	s.NextStep()
	assert.Equal(t, StepSummary, s.Step)

	s.PrevStep()
	assert.Equal(t, StepSummary-1, s.Step)
}

func TestSetAnswer(t *testing.T) {
	s := New("session-1")

	require.NoError(t, s.SetAnswer(domain.QuestionAmbiance, "minimaliste"))
	assert.Equal(t, "minimaliste", s.Answers[domain.QuestionAmbiance])

	// Overwrite with another valid option
	require.NoError(t, s.SetAnswer(domain.QuestionAmbiance, "audacieux"))
	assert.Equal(t, "audacieux", s.Answers[domain.QuestionAmbiance])

	// Unknown option is rejected and leaves the answer untouched
	err := s.SetAnswer(domain.QuestionAmbiance, "brutaliste")
	require.Error(t, err)
	assert.Equal(t, "audacieux", s.Answers[domain.QuestionAmbiance])

	// Empty value clears the answer
	require.NoError(t, s.SetAnswer(domain.QuestionAmbiance, ""))
	_, ok := s.Answers[domain.QuestionAmbiance]
	assert.False(t, ok)
}

func TestToggleOption(t *testing.T) {
	s := New("session-1")

	v, err := s.ToggleOption(domain.QuestionValeurs, "confiance")
	require.NoError(t, err)
	assert.Equal(t, "confiance", v)

	v, err = s.ToggleOption(domain.QuestionValeurs, "innovation")
	require.NoError(t, err)
	assert.Equal(t, "confiance,innovation", v)

	// Toggling an already-selected option removes it
	v, err = s.ToggleOption(domain.QuestionValeurs, "confiance")
	require.NoError(t, err)
	assert.Equal(t, "innovation", v)

	// Toggling the last option empties the answer
	v, err = s.ToggleOption(domain.QuestionValeurs, "innovation")
	require.NoError(t, err)
	assert.Equal(t, "", v)
	_, ok := s.Answers[domain.QuestionValeurs]
	assert.False(t, ok)

	// Single-select questions refuse toggle semantics
	_, err = s.ToggleOption(domain.QuestionAmbiance, "minimaliste")
	require.Error(t, err)

	_, err = s.ToggleOption("unknown", "whatever")
	require.Error(t, err)
}

func TestToggleIsIdempotentReversible(t *testing.T) {
	s := New("session-1")

	s.ToggleMoodboard("insp-03")
	s.ToggleMoodboard("insp-07")
	assert.Equal(t, []string{"insp-03", "insp-07"}, []string(s.MoodboardLikes))

	// Second toggle of the same id restores the prior set
	s.ToggleMoodboard("insp-03")
	assert.Equal(t, []string{"insp-07"}, []string(s.MoodboardLikes))
	s.ToggleMoodboard("insp-03")
	assert.Equal(t, []string{"insp-07", "insp-03"}, []string(s.MoodboardLikes))

	s.ToggleFeature("Blog")
	s.ToggleFeature("Blog")
	assert.Empty(t, s.Features)
}

func TestVoiceFlow(t *testing.T) {
	s := New("session-1")
	s.Step = StepVoice

	s.CompleteVoice("bonjour", `{"vision_globale":"x"}`)
	assert.Equal(t, StepSummary, s.Step)
	assert.True(t, s.Completed)
	assert.Equal(t, "bonjour", s.VoiceTranscription)

	s2 := New("session-2")
	s2.Step = StepVoice
	s2.SkipVoice()
	assert.Equal(t, StepSummary, s2.Step)
	assert.True(t, s2.Completed)
	assert.Empty(t, s2.VoiceTranscription)
}

func TestReset(t *testing.T) {
	s := New("session-1")
	require.NoError(t, s.SetAnswer(domain.QuestionTypo, "serif"))
	s.ToggleMoodboard("insp-01")
	s.ToggleFeature("Blog")
	s.SetCustomColors([]string{"#102030"})
	s.SetVoiceData("t", "a")
	s.Step = StepFeatures

	s.Reset()

	assert.Equal(t, "session-1", s.SessionID)
	assert.Equal(t, StepIntro, s.Step)
	assert.Empty(t, s.Answers)
	assert.Empty(t, s.MoodboardLikes)
	assert.Empty(t, s.Features)
	assert.Empty(t, s.CustomColors)
	assert.False(t, s.Completed)
	assert.Empty(t, s.VoiceTranscription)
	assert.Empty(t, s.VoiceAnalysis)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New("session-1")
	require.NoError(t, s.SetAnswer(domain.QuestionPalette, "custom"))
	s.SetCustomColors([]string{"#ff0000", "#00ff00"})
	s.ToggleMoodboard("insp-05")
	s.ToggleFeature("Newsletter")
	s.SetVoiceData("transcript", "analysis")
	s.Step = StepMoodboard

	snap := s.Snapshot()
	assert.Equal(t, StepMoodboard, snap.Step)
	assert.False(t, snap.Completed)

	restored := Restore(snap)
	assert.Equal(t, s.SessionID, restored.SessionID)
	assert.Equal(t, s.Step, restored.Step)
	assert.Equal(t, s.Answers, restored.Answers)
	assert.Equal(t, s.MoodboardLikes, restored.MoodboardLikes)
	assert.Equal(t, s.Features, restored.Features)
	assert.Equal(t, s.CustomColors, restored.CustomColors)

	// Voice fields never travel through a snapshot
	assert.Empty(t, restored.VoiceTranscription)
	assert.Empty(t, restored.VoiceAnalysis)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New("session-1")
	require.NoError(t, s.SetAnswer(domain.QuestionStructure, "one-page"))
	s.ToggleMoodboard("insp-01")

	snap := s.Snapshot()
	s.Answers[domain.QuestionStructure] = "portfolio"
	s.ToggleMoodboard("insp-02")

	assert.Equal(t, "one-page", snap.Answers[domain.QuestionStructure])
	assert.Equal(t, []string{"insp-01"}, snap.MoodboardLikes)
}

func TestRestoreClampsStep(t *testing.T) {
	s := Restore(Snapshot{SessionID: "s", Step: 42})
	assert.Equal(t, StepSummary, s.Step)
	assert.True(t, s.Completed)

	s = Restore(Snapshot{SessionID: "s", Step: -3})
	assert.Equal(t, StepIntro, s.Step)
	assert.False(t, s.Completed)
}
