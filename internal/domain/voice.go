package domain

import (
	"context"
	"encoding/json"
)

// MaxVoicePayloadBytes caps the decoded size of a voice note upload (~10MB)
const MaxVoicePayloadBytes = 10 * 1024 * 1024

// VoiceAnalysis is the structured extraction produced from a voice note
// transcript. Field names follow the questionnaire's canonical schema; the
// wizard stores the whole document as an opaque JSON string.
type VoiceAnalysis struct {
	VisionGlobale        string   `json:"vision_globale"`
	Inspirations         []string `json:"inspirations"`
	PreferencesVisuelles []string `json:"preferences_visuelles"`
	Fonctionnalites      []string `json:"fonctionnalites"`
	TypeContenu          string   `json:"type_contenu"`
	TonCommunication     string   `json:"ton_communication"`
	Contraintes          []string `json:"contraintes"`
	MotsCles             []string `json:"mots_cles"`
}

// EmptyVoiceAnalysis returns the canonical empty schema used when the
// recording contains no usable speech. Downstream consumers always receive
// this shape, never a parse failure.
func EmptyVoiceAnalysis() *VoiceAnalysis {
	return &VoiceAnalysis{
		VisionGlobale:        "Aucune description exploitable dans l'enregistrement.",
		Inspirations:         []string{},
		PreferencesVisuelles: []string{},
		Fonctionnalites:      []string{},
		TypeContenu:          "",
		TonCommunication:     "",
		Contraintes:          []string{},
		MotsCles:             []string{},
	}
}

// Normalize replaces nil slices with empty ones so the marshaled document
// always carries arrays
func (a *VoiceAnalysis) Normalize() {
	if a.Inspirations == nil {
		a.Inspirations = []string{}
	}
	if a.PreferencesVisuelles == nil {
		a.PreferencesVisuelles = []string{}
	}
	if a.Fonctionnalites == nil {
		a.Fonctionnalites = []string{}
	}
	if a.Contraintes == nil {
		a.Contraintes = []string{}
	}
	if a.MotsCles == nil {
		a.MotsCles = []string{}
	}
}

// JSON marshals the analysis
func (a *VoiceAnalysis) JSON() string {
	data, err := json.Marshal(a)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ProcessVoiceRequest is the payload for voice note processing
type ProcessVoiceRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Audio     string `json:"audio"` // base64-encoded audio payload
}

// ProcessVoiceResult carries the transcript and the analysis document
type ProcessVoiceResult struct {
	Transcription string `json:"transcription"`
	Analysis      string `json:"analysis"` // JSON-encoded VoiceAnalysis
}

// VoiceService transcribes a voice note and extracts design signals from it
type VoiceService interface {
	Process(ctx context.Context, req *ProcessVoiceRequest) (*ProcessVoiceResult, error)
}
