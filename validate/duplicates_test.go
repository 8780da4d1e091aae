package validate

import (
	"testing"

	"github.com/hyperledger/cactus-core-api-go/openapi"
)

func TestDetectDuplicateKeys_NoDup(t *testing.T) {
	iss := detectDuplicateKeys([]byte(`{"a":1,"b":[{"a":1},{"a":2}],"c":{"a":{"a":true}}}`))
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectDuplicateKeys_WithDup(t *testing.T) {
	tests := []struct {
		in   string
		path string
	}{
		{`{"a":1,"a":2}`, "/a"},
		{`{"x":[1,{"k":"v"}],"cactusNode":[{"id":"a"},{"id":"b","id":"c"}]}`, "/cactusNode/1/id"},
		{`{"m":{"a/b":{},"a/b":[]}}`, "/m/a~1b"},
	}
	for _, tt := range tests {
		iss := detectDuplicateKeys([]byte(tt.in))
		if len(iss) != 1 {
			t.Fatalf("%s: expected 1 issue, got %v", tt.in, iss)
		}
		if !iss.Has(openapi.CodeDuplicateKey, tt.path) {
			t.Fatalf("%s: expected duplicate_key at %s, got %v", tt.in, tt.path, iss)
		}
	}
}

func TestValidateJSON_DuplicateKeys(t *testing.T) {
	doc := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Item": map[string]any{
					"type":       "object",
					"properties": map[string]any{"id": map[string]any{"type": "string"}},
				},
			},
		},
	}
	in := []byte(`{"id":1,"id":"ok"}`)

	lax, _, err := New(doc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := lax.ValidateJSON("Item", in); err != nil {
		t.Fatalf("last occurrence should win: %v", err)
	}

	strict, _, err := New(doc, Options{RejectDuplicateKeys: true})
	if err != nil {
		t.Fatal(err)
	}
	err = strict.ValidateJSON("Item", in)
	iss, ok := openapi.AsIssues(err)
	if !ok || !iss.Has(openapi.CodeDuplicateKey, "/id") {
		t.Fatalf("expected duplicate_key at /id, got %v", err)
	}
}
