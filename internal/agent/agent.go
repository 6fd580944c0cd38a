// Package agent runs the BenchBoost assistant: a tool-calling loop over
// chat completions, bounded per turn, stateless between turns. History
// comes in from the caller and goes back out through the chat store.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/benchboost/benchboost/internal/domain/chat"
	"github.com/benchboost/benchboost/internal/platform/logging"
)

const (
	defaultModel    = openai.GPT4o
	maxToolRounds   = 8
	overloadRetries = 3

	fallbackAnswer = "I'm sorry, I couldn't process that request right now. Please try again in a moment."
)

// chatCompleter is the slice of the OpenAI client the agent needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config for the assistant.
type Config struct {
	Model  string
	Logger *logging.Logger

	// now is injectable for tests.
	now func() time.Time
}

// Agent answers one query per call. It holds no per-session state; the
// caller supplies the history each turn.
type Agent struct {
	client chatCompleter
	tools  *Toolset
	model  string
	logger *logging.Logger
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
}

func New(client chatCompleter, tools *Toolset, cfg Config) *Agent {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	now := cfg.now
	if now == nil {
		now = time.Now
	}
	return &Agent{
		client: client,
		tools:  tools,
		model:  model,
		logger: logger,
		now:    now,
		sleep:  sleepCtx,
	}
}

// Answer runs the tool-calling loop for one query. On model failure after
// retries it returns a best-effort apology instead of an error so the
// conversation survives provider hiccups.
func (a *Agent) Answer(ctx context.Context, history []chat.Message, query string, managerID int) (string, error) {
	messages := a.buildMessages(history, query, managerID)

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.completeWithRetry(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
			Tools:    a.tools.Definitions(),
		})
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			a.logger.ErrorContext(ctx, "chat completion failed", "error", err)
			return fallbackAnswer, nil
		}
		if len(resp.Choices) == 0 {
			a.logger.ErrorContext(ctx, "chat completion returned no choices")
			return fallbackAnswer, nil
		}

		message := resp.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			return message.Content, nil
		}

		messages = append(messages, message)
		for _, call := range message.ToolCalls {
			if call.Type != openai.ToolTypeFunction {
				continue
			}
			result := a.tools.Call(ctx, call.Function.Name, call.Function.Arguments)
			a.logger.DebugContext(ctx, "tool executed",
				"tool", call.Function.Name,
				"result_bytes", len(result),
			)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	// Out of rounds with tool calls still pending. Ask once more without
	// tools so the model has to produce an answer from what it gathered.
	resp, err := a.completeWithRetry(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
	})
	if err != nil || len(resp.Choices) == 0 {
		return fallbackAnswer, nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Agent) buildMessages(history []chat.Message, query string, managerID int) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt(a.now()),
	})

	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == chat.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	if managerID > 0 {
		query = fmt.Sprintf("[User's FPL Team ID: %d]\n\n%s", managerID, query)
	}
	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	})
}

// completeWithRetry retries overloaded-model failures with a doubling
// delay. Other errors fail immediately.
func (a *Agent) completeWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	delay := 2 * time.Second

	var lastErr error
	for attempt := 1; attempt <= overloadRetries; attempt++ {
		resp, err := a.client.CreateChatCompletion(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt == overloadRetries || !isModelOverloaded(err) {
			return openai.ChatCompletionResponse{}, err
		}

		a.logger.WarnContext(ctx, "model overloaded, retrying",
			"attempt", attempt,
			"max_attempts", overloadRetries,
			"delay", delay.String(),
		)
		if err := a.sleep(ctx, delay); err != nil {
			return openai.ChatCompletionResponse{}, err
		}
		delay *= 2
	}
	return openai.ChatCompletionResponse{}, lastErr
}

func isModelOverloaded(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 503 {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "model is overloaded")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
