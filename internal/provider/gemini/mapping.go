package gemini

import (
	"strings"

	"github.com/genum-ai/genum/internal/provider"
	"google.golang.org/genai"
)

const mimeTypeJSON = "application/json"

// MapSchema parses a stored schema, unwraps a {name, strict, schema} envelope and
// lower-cases type names. It returns nil when the schema is not a JSON object.
func MapSchema(schemaStr string) *provider.OrderedObject {
	schema, ok := provider.UnwrapSchemaEnvelope(provider.NormalizeJSONSchema(schemaStr)).(*provider.OrderedObject)
	if !ok {
		return nil
	}
	lowerTypes(schema)
	return schema
}

func lowerTypes(schema *provider.OrderedObject) {
	if t, ok := field(schema, "type").(string); ok {
		schema.Set("type", strings.ToLower(t))
	}
	if props, ok := field(schema, "properties").(*provider.OrderedObject); ok {
		for _, k := range props.Keys() {
			if child, ok := field(props, k).(*provider.OrderedObject); ok {
				lowerTypes(child)
			}
		}
	}
	if items, ok := field(schema, "items").(*provider.OrderedObject); ok {
		lowerTypes(items)
	}
}

func field(o *provider.OrderedObject, key string) any {
	v, _ := o.Get(key)
	return v
}

// MapType maps a JSON Schema type name onto the genai enum. Unknown names map to
// genai.TypeString.
func MapType(t string) genai.Type {
	switch strings.ToLower(t) {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}

// ToSchema converts an ordered JSON Schema tree into a genai schema. Property order
// is kept in PropertyOrdering.
func ToSchema(node *provider.OrderedObject) *genai.Schema {
	if node == nil {
		return nil
	}
	s := &genai.Schema{}

	switch t := field(node, "type").(type) {
	case string:
		s.Type = MapType(t)
	case []any:
		for _, v := range t {
			name, _ := v.(string)
			if strings.EqualFold(name, "null") {
				s.Nullable = genai.Ptr(true)
				continue
			}
			if s.Type == "" && name != "" {
				s.Type = MapType(name)
			}
		}
	}
	if s.Type == "" {
		if _, ok := node.Get("properties"); ok {
			s.Type = genai.TypeObject
		}
	}

	if d, ok := field(node, "description").(string); ok {
		s.Description = d
	}
	if f, ok := field(node, "format").(string); ok {
		s.Format = f
	}
	if n, ok := field(node, "nullable").(bool); ok {
		s.Nullable = genai.Ptr(n)
	}
	s.Enum = stringList(field(node, "enum"))
	s.Required = stringList(field(node, "required"))

	if props, ok := field(node, "properties").(*provider.OrderedObject); ok {
		s.Properties = make(map[string]*genai.Schema, props.Len())
		for _, k := range props.Keys() {
			child, ok := field(props, k).(*provider.OrderedObject)
			if !ok {
				continue
			}
			s.Properties[k] = ToSchema(child)
			s.PropertyOrdering = append(s.PropertyOrdering, k)
		}
	}
	if items, ok := field(node, "items").(*provider.OrderedObject); ok {
		s.Items = ToSchema(items)
	}

	return s
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MapFunction converts a tool definition into a function declaration
func MapFunction(fn provider.FunctionCall) *genai.FunctionDeclaration {
	decl := &genai.FunctionDeclaration{
		Name:        fn.Name,
		Description: fn.Description,
	}
	if len(fn.Parameters) > 0 {
		if params, ok := provider.NormalizeJSONSchema(fn.Parameters).(*provider.OrderedObject); ok {
			decl.Parameters = ToSchema(params)
		}
	}
	return decl
}

// MapConfig builds the generation config. JSON output mode is set only when a schema
// is present and tools only when there are any.
func MapConfig(request provider.Request) *genai.GenerateContentConfig {
	p := request.Parameters
	cfg := &genai.GenerateContentConfig{}

	if request.Instruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(request.Instruction, genai.RoleUser)
	}
	if p.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*p.Temperature))
	}
	if p.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(p.MaxTokens)
	}
	if p.JSONSchema != "" {
		cfg.ResponseMIMEType = mimeTypeJSON
		cfg.ResponseSchema = ToSchema(MapSchema(p.JSONSchema))
	}
	if len(p.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(p.Tools))
		for _, t := range p.Tools {
			decls = append(decls, MapFunction(t))
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	return cfg
}

// MapContents builds the user turn: the question followed by one part per file
func MapContents(request provider.Request) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(request.Question)}
	for _, f := range request.Files {
		if f.IsImage() || f.IsPDF() {
			parts = append(parts, genai.NewPartFromBytes(f.Buffer, f.ContentType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(f.UnsupportedNote()))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}
