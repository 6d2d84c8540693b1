package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fernhold/todoserve/types"
)

func TestValidateText(t *testing.T) {
	got, err := ValidateText("  hello world  ", 20, "Title")
	if err != nil {
		t.Fatalf("ValidateText: %v", err)
	}
	if got != "hello world" {
		t.Errorf("trimmed value = %q", got)
	}

	// Empty is allowed at this layer.
	got, err = ValidateText("   ", 20, "Description")
	if err != nil || got != "" {
		t.Errorf("blank input = %q, %v", got, err)
	}

	_, err = ValidateText("this title is far too long", 10, "Title")
	var vErr *types.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("over-length input returned %v, want ValidationError", err)
	}
	if vErr.Field != "Title" {
		t.Errorf("ValidationError.Field = %q", vErr.Field)
	}

	// The limit applies after trimming.
	if _, err := ValidateText("   1234567890   ", 10, "Title"); err != nil {
		t.Errorf("padded input rejected: %v", err)
	}
}

func TestValidateTextCountsCharacters(t *testing.T) {
	// 150 characters but 300 bytes; the limit is on characters.
	multibyte := strings.Repeat("é", 150)
	got, err := ValidateText(multibyte, 200, "Title")
	if err != nil {
		t.Fatalf("multibyte value within the character limit rejected: %v", err)
	}
	if got != multibyte {
		t.Errorf("value altered: %q", got)
	}

	if _, err := ValidateText(strings.Repeat("é", 201), 200, "Title"); err == nil {
		t.Error("201 characters accepted against a 200-character limit")
	}

	// Exactly at the limit passes.
	if _, err := ValidateText(strings.Repeat("✓", 10), 10, "Title"); err != nil {
		t.Errorf("value at the character limit rejected: %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want TodoPriority
	}{
		{"low", PriorityLow},
		{"medium", PriorityMedium},
		{"high", PriorityHigh},
		{"  high  ", PriorityHigh},
	} {
		got, err := ParsePriority(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParsePriority(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}

	for _, in := range []string{"urgent", "High", "MEDIUM", "", "critical"} {
		if _, err := ParsePriority(in); err == nil {
			t.Errorf("ParsePriority(%q) accepted an invalid value", in)
		}
	}
}

func TestPriorityOrDefault(t *testing.T) {
	if p, ok := PriorityOrDefault("high"); !ok || p != PriorityHigh {
		t.Errorf("PriorityOrDefault(high) = %q, %v", p, ok)
	}
	if p, ok := PriorityOrDefault("urgent"); ok || p != PriorityMedium {
		t.Errorf("PriorityOrDefault(urgent) = %q, %v; want medium fallback", p, ok)
	}
}

func TestPriorityWeight(t *testing.T) {
	if PriorityHigh.Weight() <= PriorityMedium.Weight() {
		t.Error("high does not outweigh medium")
	}
	if PriorityMedium.Weight() <= PriorityLow.Weight() {
		t.Error("medium does not outweigh low")
	}
	if TodoPriority("bogus").Weight() != PriorityMedium.Weight() {
		t.Error("unknown priority does not weigh like medium")
	}
}

func TestHasRequiredFields(t *testing.T) {
	if !(Todo{ID: 1, Title: "ok"}).HasRequiredFields() {
		t.Error("valid record reported as missing required fields")
	}
	if (Todo{ID: 0, Title: "ok"}).HasRequiredFields() {
		t.Error("zero ID passed the required-fields check")
	}
	if (Todo{ID: 1, Title: "   "}).HasRequiredFields() {
		t.Error("whitespace title passed the required-fields check")
	}
}

func TestValidateStruct(t *testing.T) {
	now := time.Now()
	valid := Todo{
		ID: 1, Title: "t", Priority: PriorityMedium, Status: StatusPending,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := ValidateStruct(valid); err != nil {
		t.Errorf("valid todo rejected: %v", err)
	}

	bad := valid
	bad.Status = "cancelled"
	if err := ValidateStruct(bad); err == nil {
		t.Error("invalid status accepted")
	}

	bad = valid
	bad.Priority = "urgent"
	if err := ValidateStruct(bad); err == nil {
		t.Error("invalid priority accepted")
	}
}
