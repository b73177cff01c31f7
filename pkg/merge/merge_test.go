package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseDoc() map[string]any {
	return map[string]any{
		"doc_meta": map[string]any{"doc_title": "Title", "scope": "MVP"},
		"tech": map[string]any{
			"tech_stack": "",
			"envs":       []any{"dev", "prod"},
		},
	}
}

func TestDeepMerge_EmptyOverrideIsNoop(t *testing.T) {
	assert.Equal(t, baseDoc(), DeepMerge(baseDoc(), map[string]any{}))
	assert.Equal(t, baseDoc(), DeepMerge(baseDoc(), nil))
}

func TestDeepMerge_EmptyValuesNeverErase(t *testing.T) {
	override := map[string]any{
		"tech":     map[string]any{"envs": []any{}},
		"doc_meta": map[string]any{"doc_title": "", "scope": nil},
	}
	assert.Equal(t, baseDoc(), DeepMerge(baseDoc(), override))
}

func TestDeepMerge_FillsStringField(t *testing.T) {
	got := DeepMerge(baseDoc(), map[string]any{
		"tech": map[string]any{"tech_stack": "Go, PostgreSQL"},
	})
	tech := got["tech"].(map[string]any)
	assert.Equal(t, "Go, PostgreSQL", tech["tech_stack"])
	assert.Equal(t, []any{"dev", "prod"}, tech["envs"])
}

func TestDeepMerge_ListsReplacedWhole(t *testing.T) {
	got := DeepMerge(baseDoc(), map[string]any{
		"tech": map[string]any{"envs": []any{"staging"}},
	})
	assert.Equal(t, []any{"staging"}, got["tech"].(map[string]any)["envs"])
}

func TestDeepMerge_UnknownKeysCopied(t *testing.T) {
	got := DeepMerge(baseDoc(), map[string]any{
		"extra":    map[string]any{"owner": "platform"},
		"doc_meta": map[string]any{"version": 2},
	})
	assert.Equal(t, map[string]any{"owner": "platform"}, got["extra"])
	assert.Equal(t, 2, got["doc_meta"].(map[string]any)["version"])
	assert.Equal(t, "Title", got["doc_meta"].(map[string]any)["doc_title"])
}

func TestDeepMerge_ScalarReplacesMap(t *testing.T) {
	got := DeepMerge(baseDoc(), map[string]any{"doc_meta": "flat"})
	assert.Equal(t, "flat", got["doc_meta"])
}

func TestDeepMerge_InputsUntouched(t *testing.T) {
	base := baseDoc()
	override := map[string]any{"tech": map[string]any{"tech_stack": "Rust"}}
	DeepMerge(base, override)

	assert.Equal(t, baseDoc(), base)
	assert.Equal(t, map[string]any{"tech": map[string]any{"tech_stack": "Rust"}}, override)
}

func TestDeepMerge_YAMLStyleMaps(t *testing.T) {
	got := DeepMerge(baseDoc(), map[string]any{
		"tech": map[any]any{"deployment": "Docker"},
	})
	assert.Equal(t, "Docker", got["tech"].(map[string]any)["deployment"])
}
