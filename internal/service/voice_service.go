package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
	"github.com/archetype-studio/archetype/pkg/storage"
)

const voiceSystemPrompt = `Tu analyses la transcription d'une note vocale laissee par un client
qui decrit le site web de ses reves. Extrais les informations en JSON selon
le schema demande. Reponds uniquement avec le JSON, en francais.`

// voiceAnalysisSchema constrains the extraction output to the canonical
// analysis document
var voiceAnalysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"vision_globale": {"type": "string"},
		"inspirations": {"type": "array", "items": {"type": "string"}},
		"preferences_visuelles": {"type": "array", "items": {"type": "string"}},
		"fonctionnalites": {"type": "array", "items": {"type": "string"}},
		"type_contenu": {"type": "string"},
		"ton_communication": {"type": "string"},
		"contraintes": {"type": "array", "items": {"type": "string"}},
		"mots_cles": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["vision_globale", "inspirations", "preferences_visuelles", "fonctionnalites", "type_contenu", "ton_communication", "contraintes", "mots_cles"]
}`)

// VoiceServiceImpl runs the voice note pipeline: transcription, structured
// extraction and persistence
type VoiceServiceImpl struct {
	transcriber  domain.SpeechTranscriber
	generator    domain.TextGenerator
	responseRepo domain.ResponseRepository
	store        storage.ObjectStore
	logger       logger.Logger
}

// NewVoiceService creates a new voice service. The object store is optional;
// passing nil disables audio archival.
func NewVoiceService(
	transcriber domain.SpeechTranscriber,
	generator domain.TextGenerator,
	responseRepo domain.ResponseRepository,
	store storage.ObjectStore,
	logger logger.Logger,
) *VoiceServiceImpl {
	return &VoiceServiceImpl{
		transcriber:  transcriber,
		generator:    generator,
		responseRepo: responseRepo,
		store:        store,
		logger:       logger,
	}
}

// Process transcribes the audio payload, extracts the analysis document and
// stores both on the session's response. An unusable recording yields the
// canonical empty schema, never an error the client has to interpret.
func (s *VoiceServiceImpl) Process(ctx context.Context, req *domain.ProcessVoiceRequest) (*domain.ProcessVoiceResult, error) {
	if req.Audio == "" {
		return nil, domain.NewValidationError("audio is required")
	}

	// Bound before decoding so an oversized payload is never buffered twice
	if base64.StdEncoding.DecodedLen(len(req.Audio)) > domain.MaxVoicePayloadBytes+2 {
		return nil, domain.ErrPayloadTooLarge
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		return nil, domain.NewValidationError("audio must be base64-encoded")
	}
	if len(audio) > domain.MaxVoicePayloadBytes {
		return nil, domain.ErrPayloadTooLarge
	}

	s.archiveAudio(ctx, req.SessionID, audio)

	transcription, err := s.transcriber.Transcribe(ctx, audio, "voice-note.webm")
	if err != nil {
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Transcription failed: %v", err))
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	analysis := s.analyze(ctx, req.SessionID, transcription)

	result := &domain.ProcessVoiceResult{
		Transcription: transcription,
		Analysis:      analysis.JSON(),
	}

	if req.SessionID != "" {
		if err := s.responseRepo.SetVoiceData(ctx, req.SessionID, result.Transcription, result.Analysis); err != nil {
			if domain.IsNotFound(err) {
				return nil, err
			}
			s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to store voice data: %v", err))
			return nil, fmt.Errorf("failed to store voice data: %w", err)
		}
	}

	return result, nil
}

// analyze turns a transcript into the canonical analysis document. Model
// output that is not valid JSON is salvaged field by field; a transcript with
// no usable speech maps to the empty schema.
func (s *VoiceServiceImpl) analyze(ctx context.Context, sessionID, transcription string) *domain.VoiceAnalysis {
	if strings.TrimSpace(transcription) == "" {
		return domain.EmptyVoiceAnalysis()
	}

	raw, err := s.generator.GenerateJSON(ctx, voiceSystemPrompt,
		"Transcription de la note vocale:\n\n"+transcription, voiceAnalysisSchema)
	if err != nil {
		s.logger.WithField("session_id", sessionID).Warn(fmt.Sprintf("Voice analysis generation failed: %v", err))
		return fallbackAnalysis(transcription)
	}

	var analysis domain.VoiceAnalysis
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &analysis); err != nil {
		s.logger.WithField("session_id", sessionID).Warn(fmt.Sprintf("Voice analysis output was not valid JSON: %v", err))
		return salvageAnalysis(raw, transcription)
	}
	analysis.Normalize()
	if analysis.VisionGlobale == "" {
		analysis.VisionGlobale = summarizeTranscript(transcription)
	}
	return &analysis
}

// salvageAnalysis pulls whatever fields it can out of malformed model output
func salvageAnalysis(raw, transcription string) *domain.VoiceAnalysis {
	analysis := fallbackAnalysis(transcription)

	if v := gjson.Get(raw, "vision_globale"); v.Exists() && v.String() != "" {
		analysis.VisionGlobale = v.String()
	}
	analysis.Inspirations = gjsonStrings(raw, "inspirations")
	analysis.PreferencesVisuelles = gjsonStrings(raw, "preferences_visuelles")
	analysis.Fonctionnalites = gjsonStrings(raw, "fonctionnalites")
	if v := gjson.Get(raw, "type_contenu"); v.Exists() {
		analysis.TypeContenu = v.String()
	}
	if v := gjson.Get(raw, "ton_communication"); v.Exists() {
		analysis.TonCommunication = v.String()
	}
	analysis.Contraintes = gjsonStrings(raw, "contraintes")
	analysis.MotsCles = gjsonStrings(raw, "mots_cles")
	analysis.Normalize()
	return analysis
}

// fallbackAnalysis wraps the plain transcript into the schema shell when no
// structured extraction is available
func fallbackAnalysis(transcription string) *domain.VoiceAnalysis {
	analysis := domain.EmptyVoiceAnalysis()
	analysis.VisionGlobale = summarizeTranscript(transcription)
	return analysis
}

func summarizeTranscript(transcription string) string {
	const maxRunes = 500
	t := strings.TrimSpace(transcription)
	runes := []rune(t)
	if len(runes) > maxRunes {
		return string(runes[:maxRunes]) + "…"
	}
	return t
}

func gjsonStrings(raw, path string) []string {
	out := []string{}
	for _, v := range gjson.Get(raw, path).Array() {
		if s := v.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// extractJSONObject strips markdown fences and surrounding prose some models
// wrap their JSON in
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

// archiveAudio stores the raw recording, best effort
func (s *VoiceServiceImpl) archiveAudio(ctx context.Context, sessionID string, audio []byte) {
	if s.store == nil || sessionID == "" {
		return
	}
	key := fmt.Sprintf("voice-notes/%s/%d.webm", sessionID, time.Now().UTC().Unix())
	if _, err := s.store.Put(ctx, key, "audio/webm", audio); err != nil {
		s.logger.WithField("session_id", sessionID).Warn(fmt.Sprintf("Failed to archive voice note: %v", err))
	}
}

var _ domain.VoiceService = (*VoiceServiceImpl)(nil)
