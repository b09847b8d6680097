package drafting

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// listingSchema constrains the model reply to the five listing fields.
var listingSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":          {Type: genai.TypeString},
		"description":    {Type: genai.TypeString},
		"estimatedYear":  {Type: genai.TypeString},
		"suggestedPrice": {Type: genai.TypeNumber},
		"conditionEval":  {Type: genai.TypeString},
	},
	Required:         []string{"title", "description", "estimatedYear", "suggestedPrice", "conditionEval"},
	PropertyOrdering: []string{"title", "description", "estimatedYear", "suggestedPrice", "conditionEval"},
}

// GeminiGenerator calls the Gemini API with a JSON response schema.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   listingSchema,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
