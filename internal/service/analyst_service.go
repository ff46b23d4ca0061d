package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

const analystSystemPrompt = `Tu es un directeur artistique senior dans un studio de design web.
A partir des reponses d'un questionnaire visuel et, si disponible, de l'analyse
d'une note vocale du client, tu rediges un brief de design complet en francais,
structure en Markdown. Le brief doit couvrir: direction artistique, palette,
typographie, structure des pages, ton de communication et fonctionnalites
recommandees. Sois concret et actionnable, sans paraphraser les reponses brutes.`

// AnalystServiceImpl produces design briefs from questionnaire data
type AnalystServiceImpl struct {
	generator  domain.TextGenerator
	promptRepo domain.GeneratedPromptRepository
	logger     logger.Logger
}

// NewAnalystService creates a new analyst service
func NewAnalystService(
	generator domain.TextGenerator,
	promptRepo domain.GeneratedPromptRepository,
	logger logger.Logger,
) *AnalystServiceImpl {
	return &AnalystServiceImpl{
		generator:  generator,
		promptRepo: promptRepo,
		logger:     logger,
	}
}

// GenerateBrief builds the brief prompt, calls the text generator and stores
// the result. Regeneration overwrites the previous brief for the session.
func (s *AnalystServiceImpl) GenerateBrief(ctx context.Context, req *domain.GenerateBriefRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	userPrompt := buildBriefPrompt(req)

	brief, err := s.generator.GenerateText(ctx, analystSystemPrompt, userPrompt)
	if err != nil {
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to generate brief: %v", err))
		return "", fmt.Errorf("failed to generate brief: %w", err)
	}

	prompt := &domain.GeneratedPrompt{
		SessionID:     req.SessionID,
		PromptType:    domain.PromptTypeAnalystBrief,
		PromptContent: brief,
	}
	if err := s.promptRepo.Upsert(ctx, prompt); err != nil {
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to store brief: %v", err))
		return "", fmt.Errorf("failed to store brief: %w", err)
	}

	return brief, nil
}

// GetBrief returns the stored brief for a session
func (s *AnalystServiceImpl) GetBrief(ctx context.Context, sessionID string) (*domain.GeneratedPrompt, error) {
	prompt, err := s.promptRepo.Get(ctx, sessionID, domain.PromptTypeAnalystBrief)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get brief: %w", err)
	}
	return prompt, nil
}

func buildBriefPrompt(req *domain.GenerateBriefRequest) string {
	var b strings.Builder

	b.WriteString("## Contexte client\n")
	if req.ClientName != "" {
		fmt.Fprintf(&b, "Nom: %s\n", req.ClientName)
	}
	if req.WebsiteURL != "" {
		fmt.Fprintf(&b, "Site actuel: %s\n", req.WebsiteURL)
	}

	b.WriteString("\n## Reponses au questionnaire\n")
	keys := make([]string, 0, len(req.Questionnaire))
	for k := range req.Questionnaire {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, req.Questionnaire[k])
	}

	if req.VoiceAnalysis != "" {
		b.WriteString("\n## Analyse de la note vocale\n")
		b.WriteString(req.VoiceAnalysis)
		b.WriteString("\n")
	}

	b.WriteString("\nRedige le brief de design.")
	return b.String()
}

var _ domain.AnalystService = (*AnalystServiceImpl)(nil)
