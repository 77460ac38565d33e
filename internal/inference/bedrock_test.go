package inference

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/docsight/backend/internal/models"
)

// stubBedrock returns a canned response body and records the request.
type stubBedrock struct {
	calls    int
	response []byte
	err      error
	modelID  string
	reqBody  []byte
}

func (s *stubBedrock) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	s.calls++
	s.modelID = aws.ToString(params.ModelId)
	s.reqBody = params.Body
	if s.err != nil {
		return nil, s.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: s.response}, nil
}

var testParams = models.SamplingParams{
	MaxNewTokens: 1000,
	Temperature:  0.7,
	TopP:         0.9,
	TopK:         20,
}

func TestBuildRequest(t *testing.T) {
	req := buildRequest("Summarize", "Sodium Chloride\n21.5", testParams)

	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Decode into a generic map to verify the wire names.
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if body["schemaVersion"] != "messages-v1" {
		t.Errorf("schemaVersion = %v, want messages-v1", body["schemaVersion"])
	}

	system := body["system"].([]any)
	if len(system) != 1 {
		t.Fatalf("expected 1 system instruction, got %d", len(system))
	}

	messages := body["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" {
		t.Errorf("role = %v, want user", msg["role"])
	}
	content := msg["content"].([]any)
	text := content[0].(map[string]any)["text"].(string)
	want := "Summarize:\n\nSodium Chloride\n21.5\n\n"
	if text != want {
		t.Errorf("user turn = %q, want %q", text, want)
	}

	infCfg := body["inferenceConfig"].(map[string]any)
	for _, field := range []string{"max_new_tokens", "top_p", "top_k", "temperature"} {
		if _, ok := infCfg[field]; !ok {
			t.Errorf("inferenceConfig missing field %q", field)
		}
	}
	if infCfg["max_new_tokens"].(float64) != 1000 {
		t.Errorf("max_new_tokens = %v, want 1000", infCfg["max_new_tokens"])
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "well-formed response",
			raw:  `{"output":{"message":{"content":[{"text":"NaCl,21.5,25.0,30"}]}}}`,
			want: "NaCl,21.5,25.0,30",
		},
		{
			name: "multiple content items takes the first",
			raw:  `{"output":{"message":{"content":[{"text":"first"},{"text":"second"}]}}}`,
			want: "first",
		},
		{
			name: "missing output",
			raw:  `{"usage":{"inputTokens":10}}`,
			want: "",
		},
		{
			name: "empty content array",
			raw:  `{"output":{"message":{"content":[]}}}`,
			want: "",
		},
		{
			name: "not JSON at all",
			raw:  `<html>backend error</html>`,
			want: "",
		},
		{
			name: "wrong shape entirely",
			raw:  `{"output":"just a string"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseResponse([]byte(tt.raw))
			if got != tt.want {
				t.Errorf("parseResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBedrockAnalyzerAnalyze(t *testing.T) {
	t.Run("returns first content text", func(t *testing.T) {
		stub := &stubBedrock{response: []byte(`{"output":{"message":{"content":[{"text":"result"}]}}}`)}
		a := newBedrockAnalyzer(stub, "amazon.nova-micro-v1:0")

		got, err := a.Analyze(context.Background(), "prompt", "text", testParams)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "result" {
			t.Errorf("expected %q, got %q", "result", got)
		}
		if stub.modelID != "amazon.nova-micro-v1:0" {
			t.Errorf("unexpected model id %q", stub.modelID)
		}
	})

	t.Run("unexpected shape yields empty result and no error", func(t *testing.T) {
		stub := &stubBedrock{response: []byte(`{"completely":"different"}`)}
		a := newBedrockAnalyzer(stub, "amazon.nova-micro-v1:0")

		got, err := a.Analyze(context.Background(), "prompt", "text", testParams)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})

	t.Run("service error is returned", func(t *testing.T) {
		stub := &stubBedrock{err: errors.New("model not available")}
		a := newBedrockAnalyzer(stub, "amazon.nova-micro-v1:0")

		if _, err := a.Analyze(context.Background(), "prompt", "text", testParams); err == nil {
			t.Fatal("expected error, got nil")
		}
		if stub.calls != 1 {
			t.Errorf("expected exactly 1 call, got %d", stub.calls)
		}
	})

	t.Run("request body carries the sampling parameters", func(t *testing.T) {
		stub := &stubBedrock{response: []byte(`{}`)}
		a := newBedrockAnalyzer(stub, "amazon.nova-micro-v1:0")

		params := models.SamplingParams{MaxNewTokens: 500, Temperature: 0.2, TopP: 0.5, TopK: 40}
		if _, err := a.Analyze(context.Background(), "p", "t", params); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var sent modelRequest
		if err := json.Unmarshal(stub.reqBody, &sent); err != nil {
			t.Fatalf("request body not valid JSON: %v", err)
		}
		if sent.InferenceConfig != (inferenceConfig{MaxNewTokens: 500, TopP: 0.5, TopK: 40, Temperature: 0.2}) {
			t.Errorf("unexpected inference config: %+v", sent.InferenceConfig)
		}
	})
}
