package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_response_repository.go -package mocks github.com/archetype-studio/archetype/internal/domain ResponseRepository

// Fixed-vocabulary question ids. These are the six single/multi-select
// questionnaire steps between the intro and the moodboard.
const (
	QuestionAmbiance  = "ambiance"
	QuestionValeurs   = "valeurs"
	QuestionStructure = "structure"
	QuestionTypo      = "typo"
	QuestionRatio     = "ratio"
	QuestionPalette   = "palette"
)

// Response is the questionnaire answer set for a session. Exactly one row
// exists per session, created empty at session creation and upserted as the
// wizard progresses.
type Response struct {
	ID        string `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`

	BusinessName string `json:"business_name,omitempty" db:"business_name"`
	WebsiteURL   string `json:"website_url,omitempty" db:"website_url"`

	Ambiance  string `json:"ambiance,omitempty" db:"ambiance"`
	Valeurs   string `json:"valeurs,omitempty" db:"valeurs"`
	Structure string `json:"structure,omitempty" db:"structure"`
	Typo      string `json:"typo,omitempty" db:"typo"`
	Ratio     string `json:"ratio,omitempty" db:"ratio"`
	Palette   string `json:"palette,omitempty" db:"palette"`

	CustomColors   StringList `json:"custom_colors" db:"custom_colors"`
	MoodboardLikes StringList `json:"moodboard_likes" db:"moodboard_likes"`
	Features       StringList `json:"features" db:"features"`

	VoiceTranscription string `json:"voice_transcription,omitempty" db:"voice_transcription"`
	VoiceAnalysis      string `json:"voice_analysis,omitempty" db:"voice_analysis"`

	CurrentStep int `json:"current_step" db:"current_step"`

	// Revision is a CAS counter: an upsert with revision <= the stored value
	// is rejected with ErrStaleRevision so out-of-order autosaves cannot
	// clobber newer state.
	Revision int `json:"revision" db:"revision"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SetAnswer stores a fixed-vocabulary answer by question id
func (r *Response) SetAnswer(questionID, value string) error {
	switch questionID {
	case QuestionAmbiance:
		r.Ambiance = value
	case QuestionValeurs:
		r.Valeurs = value
	case QuestionStructure:
		r.Structure = value
	case QuestionTypo:
		r.Typo = value
	case QuestionRatio:
		r.Ratio = value
	case QuestionPalette:
		r.Palette = value
	default:
		return NewValidationError("unknown question id: " + questionID)
	}
	return nil
}

// Answers returns the non-empty fixed-vocabulary answers keyed by question id
func (r *Response) Answers() map[string]string {
	out := make(map[string]string, 6)
	for id, v := range map[string]string{
		QuestionAmbiance:  r.Ambiance,
		QuestionValeurs:   r.Valeurs,
		QuestionStructure: r.Structure,
		QuestionTypo:      r.Typo,
		QuestionRatio:     r.Ratio,
		QuestionPalette:   r.Palette,
	} {
		if v != "" {
			out[id] = v
		}
	}
	return out
}

// ResponseRepository is the persistence interface for responses
type ResponseRepository interface {
	// CreateEmpty inserts the initial empty row for a new session
	CreateEmpty(ctx context.Context, sessionID string) (*Response, error)

	GetBySessionID(ctx context.Context, sessionID string) (*Response, error)

	// Upsert writes the response for its session. The write only applies when
	// response.Revision is strictly greater than the stored revision;
	// otherwise ErrStaleRevision is returned. At most one row per session is
	// enforced by a unique constraint on session_id.
	Upsert(ctx context.Context, response *Response) error

	// SetVoiceData updates only the voice fields, outside the CAS flow
	SetVoiceData(ctx context.Context, sessionID, transcription, analysis string) error

	CountCompleted(ctx context.Context) (int, error)
}
