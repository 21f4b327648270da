package service

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/wompwomp13/elderease-care-connect-sub000/config"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/chatbot"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
)

// Chat errors carry user-facing wording; the widget renders them verbatim.
var (
	ErrChatMessageRequired = errors.New("Message is required.")
	ErrChatNotConfigured   = errors.New("The assistant is not configured. Please try again later.")
	ErrChatUnavailable     = errors.New("The assistant is unavailable right now. Please try again later.")
)

const chatSystemPrompt = `You are the friendly assistant for ElderEase, an elder-care coordination service that connects guardians with volunteer caregivers. Answer questions using only the context provided in the user's message. Keep a warm, reassuring tone and keep answers short. If the question is not covered by the context or is unrelated to ElderEase, politely say you can only help with questions about ElderEase services and suggest contacting support.`

const chatFallback = "I'm sorry, I couldn't come up with an answer for that. Please try rephrasing your question, or contact our support team."

// ChatService relays FAQ questions to the hosted language model, grounding
// each question with the best-matching knowledge-base entries.
type ChatService interface {
	Reply(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	cfg    *config.ChatConfig
	scorer chatbot.Scorer
	kb     []chatbot.Entry
	client *openai.Client
	logger *zap.Logger
}

// NewChatService creates a ChatService instance. With no API key configured
// the service stays up but answers every question with a configuration error.
func NewChatService(cfg *config.ChatConfig, scorer chatbot.Scorer, logger *zap.Logger) ChatService {
	var client *openai.Client
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}
	return &chatService{
		cfg:    cfg,
		scorer: scorer,
		kb:     chatbot.KnowledgeBase(),
		client: client,
		logger: logger,
	}
}

func (s *chatService) Reply(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrChatMessageRequired
	}
	if s.client == nil {
		s.logger.Warn("chat request with no upstream credential configured")
		return nil, ErrChatNotConfigured
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
	}
	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Type == "bot" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Message,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: s.composePrompt(message),
	})

	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: float32(s.cfg.Temperature),
	})
	if err != nil {
		s.logger.Error("chat upstream call failed", zap.Error(err))
		return nil, ErrChatUnavailable
	}

	reply := ""
	if len(resp.Choices) > 0 {
		reply = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if reply == "" {
		reply = chatFallback
	}

	return &dto.ChatResponse{Reply: reply}, nil
}

// composePrompt packs the top-scoring knowledge entries ahead of the question
// so the model answers from ElderEase facts rather than from memory.
func (s *chatService) composePrompt(message string) string {
	ranked := s.scorer.Rank(message, s.kb)

	var b strings.Builder
	b.WriteString("Context about ElderEase:\n\n")
	for _, entry := range ranked {
		b.WriteString("- ")
		b.WriteString(entry.Content)
		b.WriteString("\n")
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(message)
	return b.String()
}
