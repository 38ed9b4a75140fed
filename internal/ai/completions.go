package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultOpenRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	defaultGroqEndpoint       = "https://api.groq.com/openai/v1/chat/completions"
	defaultOpenAIEndpoint     = "https://api.openai.com/v1/chat/completions"
)

// Completer is the surface the wizard stages depend on. Each call is one
// blocking request; the returned conversation id ties follow-up stages to
// the same chat history.
type Completer interface {
	NormalizeIngredients(ctx context.Context, rawIngredients string) (IngredientList, string, error)
	SuggestDishes(ctx context.Context, conversationID string, ingredients IngredientList, max int) ([]DishSuggestion, string, error)
	GenerateRecipe(ctx context.Context, conversationID string, req RecipeRequest) (*Recipe, string, error)
}

type Client struct {
	provider string
	apiKey   string
	model    string
	endpoint string

	normalizeSchema map[string]any
	suggestSchema   map[string]any
	recipeSchema    map[string]any

	httpClient   *http.Client
	conversation *conversationStore
}

var _ Completer = (*Client)(nil)

type conversationStore struct {
	mu    sync.RWMutex
	items map[string][]chatMessage
}

func newConversationStore() *conversationStore {
	return &conversationStore{items: make(map[string][]chatMessage)}
}

func (s *conversationStore) get(id string) ([]chatMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages, ok := s.items[id]
	if !ok {
		return nil, false
	}
	out := make([]chatMessage, len(messages))
	copy(out, messages)
	return out, true
}

func (s *conversationStore) put(id string, messages []chatMessage) {
	copyMessages := make([]chatMessage, len(messages))
	copy(copyMessages, messages)
	s.mu.Lock()
	s.items[id] = copyMessages
	s.mu.Unlock()
}

// NewClient creates a chat-completions client for an OpenAI-compatible
// provider. endpoint overrides the provider default when non-empty.
func NewClient(provider, apiKey, model, endpoint string) *Client {
	if endpoint == "" {
		switch provider {
		case "groq":
			endpoint = defaultGroqEndpoint
		case "openai":
			endpoint = defaultOpenAIEndpoint
		default:
			endpoint = defaultOpenRouterEndpoint
		}
	}

	return &Client{
		provider:        provider,
		apiKey:          apiKey,
		model:           model,
		endpoint:        endpoint,
		normalizeSchema: reflectSchema(&normalizedResponse{}),
		suggestSchema:   reflectSchema(&suggestionsResponse{}),
		recipeSchema:    reflectSchema(&recipeResponse{}),
		httpClient: &http.Client{
			Timeout:   90 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		conversation: newConversationStore(),
	}
}

func reflectSchema(v any) map[string]any {
	r := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schemaJSON, _ := json.Marshal(r.Reflect(v))
	var m map[string]any
	_ = json.Unmarshal(schemaJSON, &m)
	return m
}

// NormalizeIngredients starts a new conversation and returns the cleaned
// list. An empty result from the model is a FormatError, never a silent
// empty success.
func (c *Client) NormalizeIngredients(ctx context.Context, rawIngredients string) (IngredientList, string, error) {
	messages := append([]chatMessage{{Role: "system", Content: SystemMessage}}, buildNormalizeMessages(rawIngredients)...)

	content, err := c.completeStructured(ctx, messages, "normalized_ingredients", c.normalizeSchema)
	if err != nil {
		return nil, "", err
	}

	var parsed normalizedResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, "", formatErr(c.provider, content, "failed to parse normalized ingredients: %w", err)
	}
	if len(parsed.NormalizedIngredients) == 0 {
		return nil, "", formatErr(c.provider, content, "model returned no ingredients")
	}

	conversationID := uuid.NewString()
	c.conversation.put(conversationID, append(messages, assistantMessage(content)))
	return parsed.NormalizedIngredients, conversationID, nil
}

// SuggestDishes continues the conversation, asking for up to max dishes.
// Zero dishes is a valid outcome. Anything past max is truncated.
func (c *Client) SuggestDishes(ctx context.Context, conversationID string, ingredients IngredientList, max int) ([]DishSuggestion, string, error) {
	messages := c.history(conversationID)
	messages = append(messages, buildSuggestMessages(ingredients, max)...)

	content, err := c.completeStructured(ctx, messages, "dish_suggestions", c.suggestSchema)
	if err != nil {
		return nil, "", err
	}

	var parsed suggestionsResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, "", formatErr(c.provider, content, "failed to parse dish suggestions: %w", err)
	}

	dishes := parsed.Dishes
	if len(dishes) > max {
		dishes = dishes[:max]
	}

	conversationID = c.store(conversationID, append(messages, assistantMessage(content)))
	return dishes, conversationID, nil
}

// GenerateRecipe asks for the scale-1 baseline recipe; scaling is the
// caller's job. A schema-shaped refusal surfaces as a FormatError whose Raw
// field carries the full text for the display-as-text fallback.
func (c *Client) GenerateRecipe(ctx context.Context, conversationID string, req RecipeRequest) (*Recipe, string, error) {
	messages := c.history(conversationID)
	messages = append(messages, buildRecipeMessages(req)...)

	content, err := c.completeStructured(ctx, messages, "recipe", c.recipeSchema)
	if err != nil {
		return nil, "", err
	}

	var parsed recipeResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, "", formatErr(c.provider, content, "failed to parse recipe: %w", err)
	}
	if parsed.Recipe.Title == "" || len(parsed.Recipe.Ingredients) == 0 {
		return nil, "", formatErr(c.provider, content, "recipe response missing title or ingredients")
	}

	conversationID = c.store(conversationID, append(messages, assistantMessage(content)))
	recipe := parsed.Recipe
	recipe.ScaleFactor = 1.0
	return &recipe, conversationID, nil
}

// history returns the stored conversation, or a fresh one seeded with the
// system message when the id is unknown (different process, evicted, or a
// fallback provider that never saw the original exchange).
func (c *Client) history(conversationID string) []chatMessage {
	if conversationID != "" {
		if messages, ok := c.conversation.get(conversationID); ok {
			return messages
		}
	}
	return []chatMessage{{Role: "system", Content: SystemMessage}}
}

func (c *Client) store(conversationID string, messages []chatMessage) string {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	c.conversation.put(conversationID, messages)
	return conversationID
}

type chatRequest struct {
	Model          string             `json:"model"`
	Messages       []chatMessage      `json:"messages"`
	ResponseFormat chatResponseFormat `json:"response_format"`
}

type chatResponseFormat struct {
	Type       string         `json:"type"`
	JSONSchema chatJSONSchema `json:"json_schema"`
}

type chatJSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage json.RawMessage `json:"usage"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) completeStructured(ctx context.Context, messages []chatMessage, schemaName string, schema map[string]any) (string, error) {
	requestBody := chatRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: chatResponseFormat{
			Type: "json_schema",
			JSONSchema: chatJSONSchema{
				Name:   schemaName,
				Strict: true,
				Schema: schema,
			},
		},
	}

	body, err := json.Marshal(requestBody)
	if err != nil {
		return "", transportErr(c.provider, "failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", transportErr(c.provider, "failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportErr(c.provider, "request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportErr(c.provider, "failed reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr chatErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", transportErr(c.provider, "api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", transportErr(c.provider, "api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", formatErr(c.provider, string(respBody), "failed to decode response envelope: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", formatErr(c.provider, string(respBody), "response contained no choices")
	}

	content, err := messageContent(c.provider, parsed.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}

	if len(parsed.Usage) > 0 {
		slog.InfoContext(ctx, "API usage", slog.String("provider", c.provider), slog.Any("usage", json.RawMessage(parsed.Usage)))
	}

	return stripCodeFence(content), nil
}

func messageContent(provider string, raw json.RawMessage) (string, error) {
	var content string
	if err := json.Unmarshal(raw, &content); err == nil {
		if strings.TrimSpace(content) == "" {
			return "", formatErr(provider, string(raw), "empty response content")
		}
		return content, nil
	}

	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", formatErr(provider, string(raw), "unable to parse message content: %w", err)
	}

	var builder strings.Builder
	for _, part := range parts {
		if part.Type == "text" {
			builder.WriteString(part.Text)
		}
	}
	content = strings.TrimSpace(builder.String())
	if content == "" {
		return "", formatErr(provider, string(raw), "empty text content")
	}
	return content, nil
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
