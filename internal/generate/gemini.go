package generate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var _ ContentGenerator = (*GeminiContentGenerator)(nil)
var _ ImageGenerator = (*GeminiImageGenerator)(nil)

// NewGeminiClient dials the Gemini API with the given key.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("generate: gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("generate: gemini client: %w", err)
	}
	return client, nil
}

// GeminiContentGenerator asks a Gemini text model for the deck outline
// as schema-constrained JSON.
type GeminiContentGenerator struct {
	Client *genai.Client

	// Model should not start with "models/".
	Model string
}

func (g *GeminiContentGenerator) Generate(ctx context.Context, req Request) (*Outline, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   outlineSchema(),
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{genai.NewPartFromText(buildContentPrompt(req))},
	}}
	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate: content call: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	outline, err := decodeOutline(text)
	if err != nil {
		return nil, fmt.Errorf("generate: decode outline: %w", err)
	}
	if err := outline.Validate(); err != nil {
		return nil, fmt.Errorf("generate: invalid outline: %w", err)
	}
	return outline, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("generate: no candidates")
	}
	cand := resp.Candidates[0]
	if cand.FinishReason != genai.FinishReasonStop && cand.FinishReason != "" {
		return "", fmt.Errorf("generate: unexpected finish reason: %s", cand.FinishReason)
	}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if p != nil && p.Text != "" {
			sb.WriteString(p.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("generate: empty response")
	}
	return sb.String(), nil
}

func outlineSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"presentationTitle":    {Type: genai.TypeString},
			"presentationSubtitle": {Type: genai.TypeString},
			"slides": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"type": {
							Type: genai.TypeString,
							Enum: []string{"title", "content", "section", "conclusion"},
						},
						"title":        {Type: genai.TypeString},
						"content":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"speakerNotes": {Type: genai.TypeString},
						"imagePrompt": {
							Type:        genai.TypeString,
							Description: "Visual description for generating an image.",
						},
					},
					Required: []string{"type", "title", "content", "imagePrompt"},
				},
			},
		},
		Required: []string{"presentationTitle", "slides"},
	}
}

// GeminiImageGenerator asks a Gemini image model for a single inline
// image. A response without an inline-data part is treated as "no
// image" rather than an error.
type GeminiImageGenerator struct {
	Client *genai.Client
	Model  string
}

func (g *GeminiImageGenerator) Generate(ctx context.Context, prompt string) (*Image, error) {
	// Slides are 4:3; the hint rides in the prompt.
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{genai.NewPartFromText(prompt + " Professional presentation style, 4:3 aspect ratio.")},
	}}
	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate: image call: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return &Image{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}, nil
		}
	}
	return nil, nil
}
