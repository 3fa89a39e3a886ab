package snapshot

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestWorldDoc_MatchesSchema(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "..", "schemas", "worlddoc.schema.json"))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	doc := Export(buildWorld(t))
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := schema.Validate(v); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestWorldDocSchema_RejectsBadDocuments(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "..", "schemas", "worlddoc.schema.json"))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	bad := []string{
		`{"width":3,"height":3}`,                                // missing header
		`{"header":{"version":2},"width":3,"height":3}`,         // wrong version
		`{"header":{"version":1},"width":0,"height":3}`,         // bad width
		`{"header":{"version":1},"width":3,"height":3,"entities":[{"type":"OBJECT","name":"x"}]}`,     // missing id
		`{"header":{"version":1},"width":3,"height":3,"entities":[{"id":"a","type":"GHOST","name":"x"}]}`, // bad type
	}
	for _, raw := range bad {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			t.Fatalf("unmarshal sample: %v", err)
		}
		if err := schema.Validate(v); err == nil {
			t.Fatalf("schema accepted %s", raw)
		}
	}
}
