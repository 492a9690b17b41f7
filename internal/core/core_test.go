package core

import (
	"encoding/json"
	"testing"
)

func TestFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		value float64
		valid bool
	}{
		{"number", `12.5`, 12.5, true},
		{"integer", `18`, 18, true},
		{"numeric string", `"16.5"`, 16.5, true},
		{"padded string", `" 7.25 "`, 7.25, true},
		{"zero", `0`, 0, true},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage string", `"brisk"`, 0, false},
		{"nan string", `"NaN"`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Float
			if err := json.Unmarshal([]byte(tt.raw), &f); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v", f.Valid, tt.valid)
			}
			if f.Valid && f.Value != tt.value {
				t.Errorf("Value = %v, want %v", f.Value, tt.value)
			}
		})
	}
}

func TestFloat_emptyFieldIsNotADecodeError(t *testing.T) {
	var payload struct {
		Wind Float `json:"wind"`
	}
	if err := json.Unmarshal([]byte(`{"wind": {"nested": true}}`), &payload); err != nil {
		t.Fatalf("malformed scalar must decode as invalid, got error: %v", err)
	}
	if payload.Wind.Valid {
		t.Error("malformed scalar decoded as valid")
	}
}

func TestIncidentPrefix(t *testing.T) {
	if got := IncidentPrefix("0101-010"); got != "0101" {
		t.Errorf("IncidentPrefix = %q, want %q", got, "0101")
	}
	if got := IncidentPrefix("no-separator-missing"); got != "no" {
		t.Errorf("IncidentPrefix cuts at the first dash, got %q", got)
	}
	if got := IncidentPrefix("0101"); got != "" {
		t.Errorf("code without separator must yield empty prefix, got %q", got)
	}
}

func TestSeverityOfPrefix(t *testing.T) {
	high := []string{"0001", "0011", "0110"}
	for _, p := range high {
		if SeverityOfPrefix(p) != SeverityHigh {
			t.Errorf("prefix %s must be HIGH", p)
		}
	}
	medium := []string{"0010", "0100", "0101"}
	for _, p := range medium {
		if SeverityOfPrefix(p) != SeverityMedium {
			t.Errorf("prefix %s must be MEDIUM", p)
		}
	}
	if SeverityOfPrefix("1111") != SeverityLow {
		t.Error("prefix 1111 must be LOW")
	}
	if SeverityOfPrefix("9999") != SeverityLow {
		t.Error("unknown prefix must default to LOW")
	}
}

func TestMediumFamilyPrefix(t *testing.T) {
	if !MediumFamilyPrefix("0100") || !MediumFamilyPrefix("0101") {
		t.Error("0100 and 0101 form the tracked medium family")
	}
	if MediumFamilyPrefix("0010") {
		t.Error("0010 is medium severity but not part of the tracked family")
	}
}
