// Package ocr extracts text from a stored document with Textract.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/docsight/backend/internal/models"
)

// textractAPI is the slice of the Textract client the extractor needs.
type textractAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// Extractor detects text in a stored object.
type Extractor interface {
	ExtractText(ctx context.Context, ref models.ObjectRef) (string, error)
}

// TextractExtractor implements Extractor with a single synchronous
// DetectDocumentText call per document.
type TextractExtractor struct {
	client textractAPI
}

// NewTextractExtractor creates an extractor backed by the given client.
func NewTextractExtractor(client *textract.Client) *TextractExtractor {
	return &TextractExtractor{client: client}
}

func newTextractExtractor(client textractAPI) *TextractExtractor {
	return &TextractExtractor{client: client}
}

// ExtractText joins the text of every detected block that carries one,
// newline-separated, in the order the service returned them. A response
// with no text-bearing blocks yields an empty string and no error.
func (e *TextractExtractor) ExtractText(ctx context.Context, ref models.ObjectRef) (string, error) {
	out, err := e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(ref.Bucket),
				Name:   aws.String(ref.Key),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("detecting document text for s3://%s/%s: %w", ref.Bucket, ref.Key, err)
	}

	return JoinBlocks(out.Blocks), nil
}

// JoinBlocks concatenates the text fields of the given blocks with
// newline separators, skipping blocks without text.
func JoinBlocks(blocks []types.Block) string {
	var lines []string
	for _, b := range blocks {
		if b.Text != nil {
			lines = append(lines, aws.ToString(b.Text))
		}
	}
	return strings.Join(lines, "\n")
}
