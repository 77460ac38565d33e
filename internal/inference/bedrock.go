// Package inference analyzes extracted text with a hosted model on
// Bedrock using the Nova messages-v1 request schema.
package inference

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/docsight/backend/internal/models"
)

const systemInstruction = "You are a helpful assistant that analyzes text from scanned documents"

// bedrockAPI is the slice of the Bedrock runtime client the analyzer
// needs.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Analyzer runs one model invocation per request.
type Analyzer interface {
	Analyze(ctx context.Context, prompt, extractedText string, params models.SamplingParams) (string, error)
}

// BedrockAnalyzer implements Analyzer against the Bedrock runtime.
type BedrockAnalyzer struct {
	client  bedrockAPI
	modelID string
}

// NewBedrockAnalyzer creates an analyzer bound to the configured model.
func NewBedrockAnalyzer(client *bedrockruntime.Client, modelID string) *BedrockAnalyzer {
	return &BedrockAnalyzer{client: client, modelID: modelID}
}

func newBedrockAnalyzer(client bedrockAPI, modelID string) *BedrockAnalyzer {
	return &BedrockAnalyzer{client: client, modelID: modelID}
}

// Request/response wire types, Nova messages-v1.

type contentItem struct {
	Text string `json:"text"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentItem `json:"content"`
}

type inferenceConfig struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	TopP         float64 `json:"top_p"`
	TopK         int     `json:"top_k"`
	Temperature  float64 `json:"temperature"`
}

type modelRequest struct {
	SchemaVersion   string          `json:"schemaVersion"`
	Messages        []message       `json:"messages"`
	System          []contentItem   `json:"system"`
	InferenceConfig inferenceConfig `json:"inferenceConfig"`
}

type modelResponse struct {
	Output struct {
		Message struct {
			Content []contentItem `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

// buildRequest assembles the model request body for the given prompt,
// extracted text, and sampling parameters.
func buildRequest(prompt, extractedText string, params models.SamplingParams) modelRequest {
	return modelRequest{
		SchemaVersion: "messages-v1",
		Messages: []message{
			{
				Role: "user",
				Content: []contentItem{
					{Text: fmt.Sprintf("%s:\n\n%s\n\n", prompt, extractedText)},
				},
			},
		},
		System: []contentItem{{Text: systemInstruction}},
		InferenceConfig: inferenceConfig{
			MaxNewTokens: params.MaxNewTokens,
			TopP:         params.TopP,
			TopK:         params.TopK,
			Temperature:  params.Temperature,
		},
	}
}

// Analyze invokes the model once and returns the text of the first
// content element of the response message. A response without the
// expected output/message/content structure yields an empty string and
// no error.
func (a *BedrockAnalyzer) Analyze(ctx context.Context, prompt, extractedText string, params models.SamplingParams) (string, error) {
	body, err := json.Marshal(buildRequest(prompt, extractedText, params))
	if err != nil {
		return "", fmt.Errorf("encoding model request: %w", err)
	}

	out, err := a.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(a.modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("invoking model %s: %w", a.modelID, err)
	}

	return parseResponse(out.Body), nil
}

// parseResponse extracts the generated text from a raw response body.
// Any deviation from the expected shape is treated as no result.
func parseResponse(raw []byte) string {
	var resp modelResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ""
	}
	if len(resp.Output.Message.Content) == 0 {
		return ""
	}
	return resp.Output.Message.Content[0].Text
}
