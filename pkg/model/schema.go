package model

import "github.com/invopop/jsonschema"

// Schema describes a project file. Field names follow the yaml tags, which
// match the json tags.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}
	schema := r.Reflect(&ProjectInput{})
	schema.Title = "Vibe Promptgen Project"
	schema.Description = "Inputs for the development process definition prompt."
	return schema
}

// JSONSchema lets a list field also be written as a single string.
func (TextList) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			{Type: "string"},
		},
	}
}

// JSONSchema lets the stack also be written as a list.
func (StackText) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}

// JSONSchema lets do_dont also be written as {do: [...], dont: [...]}.
func (DoDontText) JSONSchema() *jsonschema.Schema {
	list := &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}}
	props := jsonschema.NewProperties()
	props.Set("do", list)
	props.Set("dont", list)
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "object", Properties: props},
		},
	}
}
