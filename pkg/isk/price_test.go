package isk

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/lp-bulk/pkg/constants"
	"github.com/iwvelando/lp-bulk/pkg/mathutil"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Millions with fraction", "1.5M", 1_500_000},
		{"Thousands", "250K", 250_000},
		{"Plain number", "42", 42},
		{"Billions", "3B", 3_000_000_000},
		{"Space before unit", "1.8 M", 1_800_000},
		{"Trailing currency marker", "5K ISK", 5_000},
		{"Currency marker without unit", "500 ISK", 500},
		{"Leading label skipped", "Price: 12.5M ISK", 12_500_000},
		{"Lowercase letter is not a unit", "2m", 2},
		{"Encoded form with empty unit", "999 ", 999},
		{"Zero", "0", 0},
		{"Trailing dot", "5. K", 5_000},
		{"Padded", "  7 K  ", 7_000},
		{"Second dot ends the number", "1.5.3M", 1_500_000},
		{"Doubled dot", "1..5K", 1_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode(%q) unexpected error: %v", tt.input, err)
			}
			if !mathutil.WithinRelativeTolerance(result, tt.expected, constants.RelativeTolerance) {
				t.Errorf("Decode(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	inputs := []string{"", "ISK", "M", "  ", "no price here"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Decode(input)
			if err == nil {
				t.Fatalf("Decode(%q) expected error but got none", input)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("Decode(%q) error %v is not a *ParseError", input, err)
			}
			if !errors.Is(err, ErrMalformedPrice) {
				t.Errorf("Decode(%q) error %v does not wrap ErrMalformedPrice", input, err)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Below a thousand has no unit", 999, "999 "},
		{"Zero", 0, "0 "},
		{"Exactly a thousand", 1_000, "1 K"},
		{"Fractional millions", 1_800_000, "1.8 M"},
		{"Escalates past the original unit", 900_000 * 2, "1.8 M"},
		{"Hundreds of thousands", 500_000, "500 K"},
		{"Billions", 2_500_000_000, "2.5 B"},
		{"Largest tier", 999_000_000_000, "999 B"},
		{"Fraction below a thousand", 12.5, "12.5 "},
		{"Negative profit", -7_500_000, "-7.5 M"},
		{"Negative below a thousand", -250, "-250 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Encode(tt.input)
			if err != nil {
				t.Fatalf("Encode(%v) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("Encode(%v) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	inputs := []float64{1e12, 5e15, -2e12, math.Inf(1), math.NaN()}

	for _, input := range inputs {
		result, err := Encode(input)
		if err == nil {
			t.Errorf("Encode(%v) = %q, expected RangeError", input, result)
			continue
		}
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) {
			t.Errorf("Encode(%v) error %v is not a *RangeError", input, err)
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Encode(%v) error %v does not wrap ErrOutOfRange", input, err)
		}
		if result != "" {
			t.Errorf("Encode(%v) returned text %q alongside error", input, result)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	amounts := []float64{
		0, 1, 42, 999, 999.5,
		1_000, 1_234, 250_000, 999_999,
		1_000_000, 1_234_567, 1_800_000, 7_654_321.5,
		1_000_000_000, 123_456_789_012, 999_999_999_999,
	}

	for _, amount := range amounts {
		text, err := Encode(amount)
		if err != nil {
			t.Fatalf("Encode(%v) unexpected error: %v", amount, err)
		}
		decoded, err := Decode(text)
		if err != nil {
			t.Fatalf("Decode(%q) unexpected error: %v", text, err)
		}
		if !mathutil.WithinRelativeTolerance(decoded, amount, constants.RelativeTolerance) {
			t.Errorf("Decode(Encode(%v)) = %v via %q", amount, decoded, text)
		}
	}
}

func TestRoundTripDoesNotPreserveText(t *testing.T) {
	amount, err := Decode("2500K")
	if err != nil {
		t.Fatalf("Decode unexpected error: %v", err)
	}
	text, err := Encode(amount)
	if err != nil {
		t.Fatalf("Encode unexpected error: %v", err)
	}
	if text != "2.5 M" {
		t.Errorf("expected canonical unit %q, got %q", "2.5 M", text)
	}
}

func TestMultiply(t *testing.T) {
	result, err := Multiply("900K", 2)
	if err != nil {
		t.Fatalf("Multiply unexpected error: %v", err)
	}
	if result != "1.8 M" {
		t.Errorf("Multiply(900K, 2) = %q, expected %q", result, "1.8 M")
	}

	if _, err := Multiply("ISK", 2); !errors.Is(err, ErrMalformedPrice) {
		t.Errorf("Multiply with malformed text expected ErrMalformedPrice, got %v", err)
	}
	if _, err := Multiply("900B", 2000); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Multiply past the unit ladder expected ErrOutOfRange, got %v", err)
	}
}

func TestInRange(t *testing.T) {
	if !InRange(999_000_000_000) {
		t.Errorf("InRange(999B) = false, expected true")
	}
	if InRange(1e12) {
		t.Errorf("InRange(1e12) = true, expected false")
	}
	if InRange(math.NaN()) {
		t.Errorf("InRange(NaN) = true, expected false")
	}
}
