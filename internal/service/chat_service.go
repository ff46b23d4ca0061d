package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

const chatSystemPrompt = `Tu es l'assistant du showroom d'un studio de design web. Le client
consulte des propositions de design preparees pour lui. Reponds en francais,
de facon concise et chaleureuse. Tu peux commenter les propositions a partir
du brief fourni, mais tu ne negocies pas les prix et tu n'inventes pas de
remise. Si le client veut avancer, invite-le a demander un devis ou a signer
directement depuis le showroom.`

// ChatServiceImpl answers public showroom chat messages
type ChatServiceImpl struct {
	generator domain.TextGenerator
	logger    logger.Logger
}

// NewChatService creates a new showroom chat service
func NewChatService(generator domain.TextGenerator, logger logger.Logger) *ChatServiceImpl {
	return &ChatServiceImpl{
		generator: generator,
		logger:    logger,
	}
}

func (s *ChatServiceImpl) Reply(ctx context.Context, req *domain.ChatRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	if req.DesignBrief != "" {
		b.WriteString("## Brief de design du client\n")
		b.WriteString(req.DesignBrief)
		b.WriteString("\n\n")
	}
	b.WriteString("## Conversation\n")
	for _, msg := range req.Messages {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	b.WriteString("\nassistant:")

	reply, err := s.generator.GenerateText(ctx, chatSystemPrompt, b.String())
	if err != nil {
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Chat reply failed: %v", err))
		return "", fmt.Errorf("chat reply failed: %w", err)
	}
	return reply, nil
}

var _ domain.ChatService = (*ChatServiceImpl)(nil)
