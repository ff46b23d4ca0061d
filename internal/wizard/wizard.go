// Package wizard implements the questionnaire step state machine. A State is
// an explicit value owned by whoever drives the flow; nothing here is a
// process-wide singleton. The persisted subset of the state is the Snapshot;
// voice fields are deliberately excluded from it.
package wizard

import (
	"strings"
	"time"

	"github.com/archetype-studio/archetype/internal/catalog"
	"github.com/archetype-studio/archetype/internal/domain"
)

// Wizard steps. Transitions move forward or backward by one step; the
// summary step is terminal.
const (
	StepIntro     = 0 // business name / website
	StepFirstQ    = 1 // questions occupy steps 1..6
	StepLastQ     = 6
	StepMoodboard = 7
	StepFeatures  = 8
	StepVoice     = 9
	StepSummary   = 10
)

// AutoAdvanceDelay is how long the UI lets the selection animation play
// before a single-select answer advances the wizard.
const AutoAdvanceDelay = 350 * time.Millisecond

// State is the in-flight questionnaire state for one session
type State struct {
	SessionID      string
	Step           int
	Answers        map[string]string
	MoodboardLikes domain.StringList
	Features       domain.StringList
	CustomColors   domain.StringList
	Completed      bool

	// Voice fields are transient: excluded from Snapshot on purpose
	VoiceTranscription string
	VoiceAnalysis      string
}

// Snapshot is the persisted subset of a wizard state
type Snapshot struct {
	SessionID      string            `json:"sessionId"`
	Step           int               `json:"step"`
	Answers        map[string]string `json:"answers"`
	MoodboardLikes []string          `json:"moodboardLikes"`
	Features       []string          `json:"features"`
	CustomColors   []string          `json:"customColors"`
	Completed      bool              `json:"isCompleted"`
}

// New creates a fresh state at the intro step
func New(sessionID string) *State {
	return &State{
		SessionID:      sessionID,
		Step:           StepIntro,
		Answers:        make(map[string]string),
		MoodboardLikes: domain.StringList{},
		Features:       domain.StringList{},
		CustomColors:   domain.StringList{},
	}
}

// NextStep advances one step, clamped at the terminal summary step.
// Reaching the summary marks the state completed.
func (s *State) NextStep() {
	if s.Step < StepSummary {
		s.Step++
	}
	if s.Step == StepSummary {
		s.Completed = true
	}
}

// PrevStep goes back one step, clamped at the intro
func (s *State) PrevStep() {
	if s.Step > StepIntro {
		s.Step--
	}
}

// SetAnswer stores an answer keyed by question id after validating it
// against the catalog vocabulary. For multi-select questions the caller
// builds the comma-joined set, usually with ToggleOption.
func (s *State) SetAnswer(questionID, value string) error {
	if value == "" {
		delete(s.Answers, questionID)
		return nil
	}
	if err := catalog.ValidateAnswer(questionID, value); err != nil {
		return err
	}
	s.Answers[questionID] = value
	return nil
}

// ToggleOption applies multi-select toggle semantics to a stored answer:
// re-submitting an already-selected option removes it from the set. The
// resulting comma-joined set is stored and returned.
func (s *State) ToggleOption(questionID, optionID string) (string, error) {
	q, ok := catalog.QuestionByID(questionID)
	if !ok {
		return "", domain.NewValidationError("unknown question id: " + questionID)
	}
	if !q.MultiSelect {
		return "", domain.NewValidationError("question " + questionID + " is not multi-select")
	}

	current := domain.StringList(splitCSV(s.Answers[questionID]))
	next := current.Toggle(optionID)
	value := strings.Join(next, ",")
	if err := s.SetAnswer(questionID, value); err != nil {
		return "", err
	}
	return value, nil
}

// ToggleMoodboard toggles membership of an inspiration id in the likes set
func (s *State) ToggleMoodboard(id string) {
	s.MoodboardLikes = s.MoodboardLikes.Toggle(id)
}

// ToggleFeature toggles membership of a feature name in the features set
func (s *State) ToggleFeature(name string) {
	s.Features = s.Features.Toggle(name)
}

// SetCustomColors replaces the custom palette colors
func (s *State) SetCustomColors(colors []string) {
	s.CustomColors = append(domain.StringList{}, colors...)
}

// SetVoiceData stores the transcript and the opaque analysis document
// produced by the voice pipeline
func (s *State) SetVoiceData(transcription, analysisJSON string) {
	s.VoiceTranscription = transcription
	s.VoiceAnalysis = analysisJSON
}

// CompleteVoice attaches the voice data and advances to the summary
func (s *State) CompleteVoice(transcription, analysisJSON string) {
	s.SetVoiceData(transcription, analysisJSON)
	s.Step = StepSummary
	s.Completed = true
}

// SkipVoice advances to the summary without voice data
func (s *State) SkipVoice() {
	s.Step = StepSummary
	s.Completed = true
}

// Reset returns the state to the initial step with empty selections.
// The session id is kept.
func (s *State) Reset() {
	s.Step = StepIntro
	s.Answers = make(map[string]string)
	s.MoodboardLikes = domain.StringList{}
	s.Features = domain.StringList{}
	s.CustomColors = domain.StringList{}
	s.Completed = false
	s.VoiceTranscription = ""
	s.VoiceAnalysis = ""
}

// Snapshot returns the persisted subset of the state
func (s *State) Snapshot() Snapshot {
	answers := make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	return Snapshot{
		SessionID:      s.SessionID,
		Step:           s.Step,
		Answers:        answers,
		MoodboardLikes: append([]string{}, s.MoodboardLikes...),
		Features:       append([]string{}, s.Features...),
		CustomColors:   append([]string{}, s.CustomColors...),
		Completed:      s.Completed,
	}
}

// Restore rebuilds a state from a snapshot. Voice fields start empty: they
// are re-derivable and never persisted client-side.
func Restore(snap Snapshot) *State {
	s := New(snap.SessionID)
	s.Step = clampStep(snap.Step)
	for k, v := range snap.Answers {
		s.Answers[k] = v
	}
	s.MoodboardLikes = append(domain.StringList{}, snap.MoodboardLikes...)
	s.Features = append(domain.StringList{}, snap.Features...)
	s.CustomColors = append(domain.StringList{}, snap.CustomColors...)
	s.Completed = snap.Completed || s.Step == StepSummary
	return s
}

// FromResponse rebuilds a state from a stored response row
func FromResponse(r *domain.Response) *State {
	s := New(r.SessionID)
	s.Step = clampStep(r.CurrentStep)
	for id, v := range r.Answers() {
		s.Answers[id] = v
	}
	s.MoodboardLikes = append(domain.StringList{}, r.MoodboardLikes...)
	s.Features = append(domain.StringList{}, r.Features...)
	s.CustomColors = append(domain.StringList{}, r.CustomColors...)
	s.Completed = s.Step == StepSummary
	return s
}

func clampStep(step int) int {
	if step < StepIntro {
		return StepIntro
	}
	if step > StepSummary {
		return StepSummary
	}
	return step
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
