package anthropic

import (
	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/genum-ai/genum/internal/provider"
)

const roleUser = "user"

// Message is a Messages API turn. Content is either the bare question string or a
// slice of content blocks.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// Tool is a Messages API tool definition
type Tool struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	InputSchema *provider.OrderedObject `json:"input_schema"`
}

// MapTools converts tool definitions. The input schema type is always "object".
func MapTools(tools []provider.FunctionCall) []Tool {
	out := make([]Tool, 0, len(tools))
	for _, t := range tools {
		schema, ok := provider.NormalizeJSONSchema(t.Parameters).(*provider.OrderedObject)
		if !ok {
			schema = provider.NewOrderedObject()
		}
		schema.Set("type", "object")

		out = append(out, Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}
	return out
}

// MapFile converts an attachment into a content block. Unsupported types become a
// text note.
func MapFile(f provider.File) sdk.ContentBlockParamUnion {
	switch {
	case f.IsImage():
		return sdk.NewImageBlockBase64(f.ContentType, f.Base64())
	case f.IsPDF():
		block := sdk.NewDocumentBlock(sdk.Base64PDFSourceParam{Data: f.Base64()})
		block.OfDocument.Title = sdk.String(f.FileName)
		return block
	default:
		return sdk.NewTextBlock(f.UnsupportedNote())
	}
}

// MapMessages builds the single user turn
func MapMessages(request provider.Request) []Message {
	if !request.HasFiles() {
		return []Message{{Role: roleUser, Content: request.Question}}
	}

	blocks := make([]sdk.ContentBlockParamUnion, 0, len(request.Files)+1)
	blocks = append(blocks, sdk.NewTextBlock(request.Question))
	for _, f := range request.Files {
		blocks = append(blocks, MapFile(f))
	}
	return []Message{{Role: roleUser, Content: blocks}}
}
