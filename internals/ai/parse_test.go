// file: internals/ai/parse_test.go
package ai

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, false},
		{"bare array", `[1, 2]`, `[1, 2]`, false},
		{"fenced object", "```json\n{\"a\": 1}\n```", `{"a": 1}`, false},
		{"prose before and after", `Sure! Here you go: {"a": 1} Hope that helps.`, `{"a": 1}`, false},
		{"array before object picks the array", `[{"a": 1}]`, `[{"a": 1}]`, false},
		{"object before array picks the object", `{"list": [1]}`, `{"list": [1]}`, false},
		{"no json at all", "I could not produce that.", "", true},
		{"unterminated object", `{"a": 1`, "", true},
		{"empty input", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if !IsDecodeError(err) {
					t.Errorf("error is %T, want *DecodeError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"uppercase tag", "```JSON\n{}\n```", `{}`},
		{"plain fence", "```\n[]\n```", `[]`},
		{"surrounding whitespace", "  ```json\n{}\n```  ", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairControlChars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"raw newline inside string", "{\"a\": \"line1\nline2\"}", `{"a": "line1\nline2"}`},
		{"raw tab inside string", "{\"a\": \"x\ty\"}", `{"a": "x\ty"}`},
		{"newline outside string untouched", "{\n\"a\": 1\n}", "{\n\"a\": 1\n}"},
		{"escaped quote stays escaped", `{"a": "he said \"hi\""}`, `{"a": "he said \"hi\""}`},
		{"already escaped newline untouched", `{"a": "x\ny"}`, `{"a": "x\ny"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairControlChars(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	type reply struct {
		IsCorrect bool   `json:"isCorrect"`
		Note      string `json:"note"`
	}

	t.Run("clean reply", func(t *testing.T) {
		var out reply
		if err := DecodeStrict(`{"isCorrect": true, "note": "ok"}`, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsCorrect || out.Note != "ok" {
			t.Errorf("decoded %+v", out)
		}
	})

	t.Run("fenced reply with raw newline in value", func(t *testing.T) {
		var out reply
		raw := "```json\n{\"isCorrect\": false, \"note\": \"first\nsecond\"}\n```"
		if err := DecodeStrict(raw, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Note != "first\nsecond" {
			t.Errorf("note = %q", out.Note)
		}
	})

	t.Run("type mismatch yields DecodeError", func(t *testing.T) {
		var out reply
		err := DecodeStrict(`{"isCorrect": "yes"}`, &out)
		if err == nil {
			t.Fatal("expected error")
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("error is %T, want *DecodeError", err)
		}
	})

	t.Run("prose only yields DecodeError", func(t *testing.T) {
		var out reply
		if err := DecodeStrict("no json here", &out); !IsDecodeError(err) {
			t.Errorf("got %v, want DecodeError", err)
		}
	})
}
