package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNullableUUID(t *testing.T) {
	type payload struct {
		CategoryID NullableUUID `json:"category_id"`
	}

	t.Run("absent key leaves the field unset", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if p.CategoryID.Set {
			t.Fatal("expected field to be unset")
		}
	})

	t.Run("explicit null is set with a nil value", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"category_id": null}`), &p); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if !p.CategoryID.Set {
			t.Fatal("expected field to be set")
		}
		if p.CategoryID.Value != nil {
			t.Fatalf("expected nil value, got %v", p.CategoryID.Value)
		}
	})

	t.Run("valid uuid string is parsed", func(t *testing.T) {
		id := uuid.New()
		var p payload
		if err := json.Unmarshal([]byte(`{"category_id": "`+id.String()+`"}`), &p); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if !p.CategoryID.Set {
			t.Fatal("expected field to be set")
		}
		if p.CategoryID.Value == nil || *p.CategoryID.Value != id {
			t.Fatalf("expected value %s, got %v", id, p.CategoryID.Value)
		}
	})

	t.Run("malformed uuid string is rejected", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"category_id": "not-a-uuid"}`), &p); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("non-string value is rejected", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"category_id": 42}`), &p); err == nil {
			t.Fatal("expected an error")
		}
	})
}
