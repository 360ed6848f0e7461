package usecase

import (
	"errors"
	"testing"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

func TestRecoverJSON(t *testing.T) {
	type payload struct {
		Name  string   `json:"name"`
		Price *float64 `json:"price"`
	}

	t.Run("plain JSON object", func(t *testing.T) {
		var got payload
		if err := RecoverJSON(`{"name":"Lamp","price":29.99}`, &got); err != nil {
			t.Fatalf("RecoverJSON() error = %v", err)
		}
		if got.Name != "Lamp" || got.Price == nil || *got.Price != 29.99 {
			t.Errorf("decoded = %+v", got)
		}
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		text := "```json\n{\"name\":\"Lamp\",\"price\":29.99}\n```"

		var got payload
		if err := RecoverJSON(text, &got); err != nil {
			t.Fatalf("RecoverJSON() error = %v", err)
		}
		if got.Name != "Lamp" {
			t.Errorf("Name = %q", got.Name)
		}
	})

	t.Run("JSON surrounded by prose", func(t *testing.T) {
		text := `Sure! Here is the product information you asked for:
		{"name":"Lamp","price":null}
		Let me know if you need anything else.`

		var got payload
		if err := RecoverJSON(text, &got); err != nil {
			t.Fatalf("RecoverJSON() error = %v", err)
		}
		if got.Name != "Lamp" || got.Price != nil {
			t.Errorf("decoded = %+v", got)
		}
	})

	t.Run("no JSON object present", func(t *testing.T) {
		var got payload
		err := RecoverJSON("I could not find any product on that page.", &got)
		if !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("error = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("invalid JSON between braces", func(t *testing.T) {
		var got payload
		err := RecoverJSON(`{"name": "Lamp", "price": }`, &got)
		if !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("error = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("non-numeric price fails decoding", func(t *testing.T) {
		var got payload
		err := RecoverJSON(`{"name":"Lamp","price":"$29.99"}`, &got)
		if !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("error = %v, want ErrMalformedResponse", err)
		}
	})
}
