package openai

import (
	"encoding/json"
	"fmt"

	"github.com/genum-ai/genum/internal/provider"
	"github.com/kaptinlin/jsonrepair"
	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/tidwall/gjson"
)

const (
	itemTypeMessage      = "message"
	itemTypeFunctionCall = "function_call"
	itemTypeReasoning    = "reasoning"

	contentTypeOutputText = "output_text"
	contentTypeRefusal    = "refusal"
)

// ResponsesConfig maps a request onto Responses API params. Options carry the fields
// that must keep their JSON key order or that the typed params do not expose.
func ResponsesConfig(request provider.Request) (responses.ResponseNewParams, []option.RequestOption) {
	p := request.Parameters
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(request.Model),
		Input: MapInput(request),
	}

	if request.Instruction != "" {
		params.Instructions = sdk.String(request.Instruction)
	}
	if p.Temperature != nil {
		params.Temperature = sdk.Float(*p.Temperature)
	}
	if p.MaxTokens > 0 {
		params.MaxOutputTokens = sdk.Int(p.MaxTokens)
	}
	if p.ReasoningEffort != "" {
		params.Reasoning = shared.ReasoningParam{
			Effort: shared.ReasoningEffort(p.ReasoningEffort),
		}
	}
	if len(p.Tools) > 0 {
		params.Tools = MapTools(p.Tools)
	}

	var opts []option.RequestOption
	if format := ResponsesFormatConfig(p.ResponseFormat, p.JSONSchema); format != nil {
		opts = append(opts, option.WithJSONSet("text.format", format))
	}
	if p.Verbosity != "" {
		opts = append(opts, option.WithJSONSet("text.verbosity", p.Verbosity))
	}

	return params, opts
}

// ResponsesFormatConfig builds the text.format object. It returns nil for an empty or
// unknown response format so the vendor default applies. A json_schema request whose
// schema is not a JSON object degrades to json_object.
func ResponsesFormatConfig(responseFormat, jsonSchema string) *provider.OrderedObject {
	format := provider.NewOrderedObject()

	switch responseFormat {
	case provider.ResponseFormatText, provider.ResponseFormatJSONObject:
		format.Set("type", responseFormat)
	case provider.ResponseFormatJSONSchema:
		schema, ok := provider.NormalizeJSONSchema(jsonSchema).(*provider.OrderedObject)
		if !ok {
			provider.Log().Warn("JSON schema is not an object, falling back to json_object", map[string]interface{}{
				"schema": jsonSchema,
			})
			format.Set("type", provider.ResponseFormatJSONObject)
			return format
		}
		format.Set("type", responseFormat)
		if _, wrapped := schema.Get("schema"); !wrapped {
			format.Set("name", "response")
			format.Set("schema", schema)
			return format
		}
		for _, k := range schema.Keys() {
			v, _ := schema.Get(k)
			format.Set(k, v)
		}
	default:
		return nil
	}

	return format
}

// MapTools converts tool definitions into function tools
func MapTools(tools []provider.FunctionCall) []responses.ToolUnionParam {
	out := make([]responses.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		fn := &responses.FunctionToolParam{
			Name:       t.Name,
			Parameters: t.Parameters,
			Strict:     sdk.Bool(false),
		}
		if t.Description != "" {
			fn.Description = sdk.String(t.Description)
		}
		out = append(out, responses.ToolUnionParam{OfFunction: fn})
	}
	return out
}

// MapInput returns the bare question, or a user message with one part per file
func MapInput(request provider.Request) responses.ResponseNewParamsInputUnion {
	if !request.HasFiles() {
		return responses.ResponseNewParamsInputUnion{OfString: sdk.String(request.Question)}
	}

	content := responses.ResponseInputMessageContentListParam{
		{OfInputText: &responses.ResponseInputTextParam{Text: request.Question}},
	}
	for _, f := range request.Files {
		content = append(content, mapFile(f))
	}

	return responses.ResponseNewParamsInputUnion{
		OfInputItemList: responses.ResponseInputParam{
			responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRoleUser),
		},
	}
}

func mapFile(f provider.File) responses.ResponseInputContentUnionParam {
	switch {
	case f.IsImage():
		return responses.ResponseInputContentUnionParam{
			OfInputImage: &responses.ResponseInputImageParam{
				ImageURL: sdk.String(f.DataURL()),
				Detail:   responses.ResponseInputImageDetailAuto,
			},
		}
	case f.IsPDF():
		return responses.ResponseInputContentUnionParam{
			OfInputFile: &responses.ResponseInputFileParam{
				FileData: sdk.String(f.DataURL()),
				Filename: sdk.String(f.FileName),
			},
		}
	default:
		return responses.ResponseInputContentUnionParam{
			OfInputText: &responses.ResponseInputTextParam{Text: f.UnsupportedNote()},
		}
	}
}

type functionCallAnswer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// AnswerMapper turns one output item into the answer string
func AnswerMapper(item responses.ResponseOutputItemUnion) (string, error) {
	switch item.Type {
	case itemTypeMessage:
		for _, c := range item.Content {
			switch c.Type {
			case contentTypeOutputText:
				return c.Text, nil
			case contentTypeRefusal:
				return "", fmt.Errorf("%w: %s", provider.ErrRefusal, c.Refusal)
			default:
				return c.RawJSON(), nil
			}
		}
		return "", nil
	case itemTypeFunctionCall:
		args, err := parseArguments(item.Arguments)
		if err != nil {
			return "", err
		}
		answer, err := json.Marshal(functionCallAnswer{
			ID:        item.ID,
			Name:      item.Name,
			Arguments: args,
		})
		if err != nil {
			return "", fmt.Errorf("failed to encode function call: %w", err)
		}
		return string(answer), nil
	default:
		return "", fmt.Errorf("%w: %s", provider.ErrInvalidMessageType, item.Type)
	}
}

func parseArguments(args string) (json.RawMessage, error) {
	if args == "" {
		return json.RawMessage("{}"), nil
	}
	if gjson.Valid(args) {
		return json.RawMessage(args), nil
	}

	repaired, err := jsonrepair.JSONRepair(args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse function call arguments %q: %w", args, err)
	}
	if !gjson.Valid(repaired) {
		return nil, fmt.Errorf("failed to parse function call arguments %q", args)
	}
	return json.RawMessage(repaired), nil
}

// reasoningSummary joins the summary texts of a reasoning item
func reasoningSummary(item responses.ResponseOutputItemUnion) []string {
	var out []string
	for _, s := range gjson.Get(item.RawJSON(), "summary.#.text").Array() {
		if s.String() != "" {
			out = append(out, s.String())
		}
	}
	return out
}
