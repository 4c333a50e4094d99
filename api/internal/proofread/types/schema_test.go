package types

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func jsonFieldNames(t *testing.T, v any) []string {
	t.Helper()
	rt := reflect.TypeOf(v)
	var names []string
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			t.Fatalf("field %s has no json name", rt.Field(i).Name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func propertyNames(s *genai.Schema) []string {
	var names []string
	for k := range s.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func TestResponseSchemaMatchesModel(t *testing.T) {
	s := ResponseSchema()

	if got, want := propertyNames(s), jsonFieldNames(t, Proofreading{}); !reflect.DeepEqual(got, want) {
		t.Fatalf("top-level properties = %v, want %v", got, want)
	}

	items := s.Properties[FieldCorrections].Items
	if items == nil {
		t.Fatal("corrections has no item schema")
	}
	want := jsonFieldNames(t, Correction{})
	if got := propertyNames(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("correction properties = %v, want %v", got, want)
	}

	required := append([]string(nil), items.Required...)
	sort.Strings(required)
	if !reflect.DeepEqual(required, want) {
		t.Fatalf("correction required = %v, want all of %v", required, want)
	}
}

func TestResponseSchemaEnum(t *testing.T) {
	enum := ResponseSchema().Properties[FieldCorrections].Items.Properties[FieldType].Enum
	all := AllCorrectionTypes()
	if len(enum) != len(all) {
		t.Fatalf("enum has %d values, want %d", len(enum), len(all))
	}
	for i, v := range all {
		if enum[i] != string(v) {
			t.Errorf("enum[%d] = %q, want %q", i, enum[i], v)
		}
	}
}

func TestResponseSchemaFreshValue(t *testing.T) {
	a := ResponseSchema()
	a.Properties[FieldCorrected].Type = genai.TypeInteger
	if b := ResponseSchema(); b.Properties[FieldCorrected].Type != genai.TypeString {
		t.Fatal("ResponseSchema returned shared state")
	}
}

func TestJSONSchemaDocument(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal(JSONSchema(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["type"] != "object" {
		t.Fatalf("type = %v, want object", doc["type"])
	}
	props := doc["properties"].(map[string]any)
	corrections := props[FieldCorrections].(map[string]any)
	if corrections["type"] != "array" {
		t.Fatalf("corrections type = %v, want array", corrections["type"])
	}
	item := corrections["items"].(map[string]any)
	itemProps := item["properties"].(map[string]any)
	if got := itemProps[FieldStartIndex].(map[string]any)["type"]; got != "integer" {
		t.Errorf("startIndex type = %v, want integer", got)
	}
	enum := itemProps[FieldType].(map[string]any)["enum"].([]any)
	if len(enum) != 6 {
		t.Errorf("enum = %v, want 6 values", enum)
	}
	if req := item["required"].([]any); len(req) != 5 {
		t.Errorf("required = %v, want 5 fields", req)
	}
}
