package genai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	googlegenai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Config struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// Client is a thin wrapper over the Gemini SDK. Prompt construction and
// response interpretation belong to the calling services.
type Client struct {
	client *googlegenai.Client
	model  *googlegenai.GenerativeModel
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("genai model is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	client, err := googlegenai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.7)

	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateText sends a single text prompt and returns the concatenated
// text parts of the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, googlegenai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return collectText(resp)
}

// GenerateWithImage sends a prompt together with inline image bytes.
// The format is the image subtype, e.g. "jpeg" or "png".
func (c *Client) GenerateWithImage(ctx context.Context, prompt, format string, data []byte) (string, error) {
	resp, err := c.model.GenerateContent(ctx,
		googlegenai.Text(prompt),
		googlegenai.ImageData(format, data),
	)
	if err != nil {
		return "", fmt.Errorf("generate content with image: %w", err)
	}
	return collectText(resp)
}

func collectText(resp *googlegenai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(googlegenai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("model response has no text parts")
	}
	return out, nil
}
