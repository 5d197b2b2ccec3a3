// Package genai calls the generative-content endpoint used by the advisor
// page: free-text prompt in, structured knowledge map or image payload out.
// Fully decoupled from the booking/inventory core.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/guonaihong/gout"
)

var ErrEmptyResponse = errors.New("genai: empty response")

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Client struct {
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
}

func NewClient(apiKey, textModel, imageModel string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,
	}
}

type KeyInsight struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type GraphNode struct {
	ID    string `json:"id"`
	Group int    `json:"group"`
}

type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ExpandedContent is the structured knowledge map the advisor renders.
type ExpandedContent struct {
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Narrative   string       `json:"narrative"`
	KeyInsights []KeyInsight `json:"keyInsights"`
	Nodes       []GraphNode  `json:"nodes"`
	Links       []GraphLink  `json:"links"`
	ImagePrompt string       `json:"imagePrompt"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, model string, body any) (*generateResponse, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)

	var rsp generateResponse
	code := 0
	err := gout.POST(url).
		WithContext(ctx).
		SetQuery(gout.H{"key": c.apiKey}).
		SetJSON(body).
		BindJSON(&rsp).
		Code(&code).
		Do()
	if err != nil {
		return nil, fmt.Errorf("genai call: %w", err)
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("genai call: http %d", code)
	}
	if len(rsp.Candidates) == 0 || len(rsp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}
	return &rsp, nil
}

// ExpandIdea unfolds a seed phrase into a knowledge map using a JSON
// response schema so the payload comes back directly unmarshalable.
func (c *Client) ExpandIdea(ctx context.Context, seed string) (*ExpandedContent, error) {
	body := gout.H{
		"contents": []gout.H{{
			"parts": []gout.H{{"text": fmt.Sprintf("Expand this idea into a comprehensive knowledge map: %q", seed)}},
		}},
		"systemInstruction": gout.H{
			"parts": []gout.H{{"text": "You are a master of unfolding simple concepts into complex, multi-layered explanations. Provide structured data for visualizations (D3 nodes/links) and a rich narrative. Ensure 'keyInsights' use a value between 1 and 100."}},
		},
		"generationConfig": gout.H{
			"responseMimeType": "application/json",
			"responseSchema":   expandedContentSchema,
		},
	}

	rsp, err := c.generate(ctx, c.textModel, body)
	if err != nil {
		return nil, err
	}

	var content ExpandedContent
	if err := json.Unmarshal([]byte(rsp.Candidates[0].Content.Parts[0].Text), &content); err != nil {
		return nil, fmt.Errorf("genai decode: %w", err)
	}
	return &content, nil
}

// GenerateImage renders the prompt and returns the base64 image payload.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body := gout.H{
		"contents": []gout.H{{
			"parts": []gout.H{{"text": fmt.Sprintf("Cinematic, high-fidelity visualization of: %s. Artistic and symbolic style.", prompt)}},
		}},
		"generationConfig": gout.H{
			"imageConfig": gout.H{"aspectRatio": "16:9"},
		},
	}

	rsp, err := c.generate(ctx, c.imageModel, body)
	if err != nil {
		return "", err
	}
	for _, part := range rsp.Candidates[0].Content.Parts {
		if part.InlineData != nil {
			return part.InlineData.Data, nil
		}
	}
	return "", ErrEmptyResponse
}

var expandedContentSchema = gout.H{
	"type": "OBJECT",
	"properties": gout.H{
		"title":     gout.H{"type": "STRING"},
		"summary":   gout.H{"type": "STRING"},
		"narrative": gout.H{"type": "STRING"},
		"keyInsights": gout.H{
			"type": "ARRAY",
			"items": gout.H{
				"type": "OBJECT",
				"properties": gout.H{
					"label": gout.H{"type": "STRING"},
					"value": gout.H{"type": "NUMBER"},
				},
				"required": []string{"label", "value"},
			},
		},
		"nodes": gout.H{
			"type": "ARRAY",
			"items": gout.H{
				"type": "OBJECT",
				"properties": gout.H{
					"id":    gout.H{"type": "STRING"},
					"group": gout.H{"type": "NUMBER"},
				},
				"required": []string{"id", "group"},
			},
		},
		"links": gout.H{
			"type": "ARRAY",
			"items": gout.H{
				"type": "OBJECT",
				"properties": gout.H{
					"source": gout.H{"type": "STRING"},
					"target": gout.H{"type": "STRING"},
				},
				"required": []string{"source", "target"},
			},
		},
		"imagePrompt": gout.H{"type": "STRING"},
	},
	"required": []string{"title", "summary", "narrative", "keyInsights", "nodes", "links", "imagePrompt"},
}
