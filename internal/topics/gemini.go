package topics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"
)

// categoryModifications maps generic categories to more specific variants
// before they reach the model
var categoryModifications = map[string]string{
	"movies":      "bollywood movies",
	"celebrities": "Indian celebrities",
	"tv_shows":    "Indian tv shows",
	"fruits":      "Indian fruits",
	"foods":       "Indian foods",
}

// GeminiConfig holds configuration for the Gemini topic provider
type GeminiConfig struct {
	// APIKey for the Gemini API
	APIKey string

	// Model name; defaults to gemini-2.0-flash
	Model string
}

// geminiProvider implements Provider using the Gemini API
type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed topic provider
func NewGemini(ctx context.Context, cfg *GeminiConfig) (*geminiProvider, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API key cannot be empty")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiProvider{
		client: client,
		model:  model,
	}, nil
}

// sanitiseCategory normalises a category and maps it to a specific variant
func sanitiseCategory(category string) string {
	normalised := strings.ToLower(strings.TrimSpace(category))
	if modified, ok := categoryModifications[normalised]; ok {
		return modified
	}
	return normalised
}

// GenerateTopics asks Gemini for a pair of similar but distinct topics
func (p *geminiProvider) GenerateTopics(ctx context.Context, input *GenerateTopicsInput) (*TopicPair, error) {
	if input == nil || input.Category == "" {
		return nil, errors.New("input and category cannot be empty")
	}

	prompt := buildPrompt(input)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](1.0),
		TopP:             genai.Ptr[float32](0.95),
		TopK:             genai.Ptr[float32](40),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"player_topic":   {Type: genai.TypeString},
				"imposter_topic": {Type: genai.TypeString},
			},
			Required: []string{"player_topic", "imposter_topic"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	var parsed struct {
		PlayerTopic   string `json:"player_topic"`
		ImposterTopic string `json:"imposter_topic"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	if parsed.PlayerTopic == "" || parsed.ImposterTopic == "" {
		return nil, errors.New("gemini returned an incomplete topic pair")
	}

	return &TopicPair{
		PlayerTopic:   parsed.PlayerTopic,
		ImposterTopic: parsed.ImposterTopic,
	}, nil
}

func buildPrompt(input *GenerateTopicsInput) string {
	category := sanitiseCategory(input.Category)

	avoidInstruction := ""
	if input.PreviousPair != nil {
		avoidInstruction = fmt.Sprintf(
			"- DO NOT regenerate the exact same pair as before: '%s' and '%s'. Pick something different.\n",
			input.PreviousPair.PlayerTopic, input.PreviousPair.ImposterTopic,
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a unique pair of topics for a social deduction game called \"Guess the Imposter\".\n")
	fmt.Fprintf(&b, "Category: %s\n", category)
	fmt.Fprintf(&b, "Randomness Token: %d\n", rand.Intn(10000)+1)
	fmt.Fprintf(&b, "Timestamp: %d\n\n", time.Now().Unix())
	b.WriteString("RULES:\n")
	fmt.Fprintf(&b, "- Create TWO similar but distinct items from category %s.\n", category)
	b.WriteString("- Return only the two items in JSON with keys \"player_topic\" and \"imposter_topic\".\n")
	b.WriteString("- The \"player_topic\" should be more common/well-known; the \"imposter_topic\" should be less obvious but plausible.\n")
	b.WriteString(avoidInstruction)
	b.WriteString("- Ensure they are common knowledge with subtle differences.\n")
	b.WriteString("- Be creative! Pick items not suggested in the last 100 rounds.\n")
	b.WriteString("- Cross-check: topics must belong to the category.\n")
	b.WriteString("- Interesting and fun to describe!\n")

	return b.String()
}
