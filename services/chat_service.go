package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"phantoms-store/logger"
	"phantoms-store/models"

	"go.uber.org/zap"
)

const (
	chatSystemPrompt = `You are the shopping assistant for Mohit Corporation, a store selling digital gaming products: game panels, bots, websites and YouTube resources.
Answer briefly and helpfully. Point buyers to the catalogue for prices and to the contact form for custom orders.
Never invent products, prices or discounts.`

	// ChatFallbackReply is served whenever the model cannot be reached.
	ChatFallbackReply = "Our assistant is unavailable right now. Browse the catalogue or leave us a message through the contact form and the team will get back to you shortly."

	chatMaxTokens     = 512
	chatMaxErrorBytes = 2048
)

type ChatOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type ChatService interface {
	Reply(ctx context.Context, req models.ChatRequest) models.ChatResponse
}

type chatService struct {
	opts   ChatOptions
	client *http.Client
}

func NewChatService(opts ChatOptions) ChatService {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	return &chatService{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

// Reply never fails. Upstream problems are logged and answered with the fallback text.
func (s *chatService) Reply(ctx context.Context, req models.ChatRequest) models.ChatResponse {
	if s.opts.APIKey == "" {
		logger.Debug(ctx, "chat served from fallback, no api key configured")
		return fallbackChat()
	}

	reply, err := s.complete(ctx, req)
	if err != nil {
		logger.Warn(ctx, "chat completion failed, serving fallback", zap.Error(err))
		return fallbackChat()
	}
	return models.ChatResponse{Reply: reply}
}

func fallbackChat() models.ChatResponse {
	return models.ChatResponse{Reply: ChatFallbackReply, Fallback: true}
}

func (s *chatService) complete(ctx context.Context, req models.ChatRequest) (string, error) {
	messages := make([]completionMessage, 0, len(req.History)+2)
	messages = append(messages, completionMessage{Role: "system", Content: chatSystemPrompt})
	for _, h := range req.History {
		messages = append(messages, completionMessage{Role: h.Role, Content: h.Content})
	}
	messages = append(messages, completionMessage{Role: "user", Content: req.Message})

	body, err := json.Marshal(completionRequest{
		Model:       s.opts.Model,
		Messages:    messages,
		MaxTokens:   chatMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.opts.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", models.ErrorUpstream{Message: "chat request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, chatMaxErrorBytes))
		return "", models.ErrorUpstream{Message: fmt.Sprintf("chat api returned status %d: %s", resp.StatusCode, raw)}
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", models.ErrorUpstream{Message: "decode chat response", Err: err}
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", models.ErrorUpstream{Message: "chat api returned no reply"}
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
