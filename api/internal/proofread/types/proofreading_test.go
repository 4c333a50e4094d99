package types

import (
	"encoding/json"
	"testing"
)

func TestCorrectionTypeUnmarshal(t *testing.T) {
	for _, v := range AllCorrectionTypes() {
		var got CorrectionType
		if err := json.Unmarshal([]byte(`"`+string(v)+`"`), &got); err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		if got != v {
			t.Errorf("got %q, want %q", got, v)
		}
	}

	for _, bad := range []string{`"style"`, `"Spelling"`, `""`, `1`, `null`} {
		var got CorrectionType
		if err := json.Unmarshal([]byte(bad), &got); err == nil {
			t.Errorf("%s: expected error, got %q", bad, got)
		}
	}
}

func TestCorrectionInBounds(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		length     int
		want       bool
	}{
		{"single char", 0, 0, 1, true},
		{"whole input", 0, 9, 10, true},
		{"end at length", 0, 10, 10, false},
		{"negative start", -1, 2, 10, false},
		{"inverted", 5, 4, 10, false},
		{"empty input", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Correction{StartIndex: tt.start, EndIndex: tt.end}
			if got := c.InBounds(tt.length); got != tt.want {
				t.Errorf("InBounds(%d) = %v, want %v", tt.length, got, tt.want)
			}
		})
	}
}

func TestCorrectionOriginal(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		start, end int
		want       string
	}{
		{"ascii", "Their going too the store.", 0, 4, "Their"},
		{"ascii middle", "Their going too the store.", 12, 14, "too"},
		{"multibyte", "Ça va très bien", 6, 9, "très"},
		{"last rune", "naïve", 4, 4, "e"},
		{"emoji", "hi 👋 there", 3, 3, "👋"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Correction{StartIndex: tt.start, EndIndex: tt.end}
			got, err := c.Original(tt.input)
			if err != nil {
				t.Fatalf("Original: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := (Correction{StartIndex: 3, EndIndex: 9}).Original("short"); err == nil {
		t.Error("expected error for out of range span")
	}
}

func TestLengthCountsCodePoints(t *testing.T) {
	if got := Length("très"); got != 4 {
		t.Errorf("Length = %d, want 4", got)
	}
}
