// Package isk converts unit-suffixed ISK price text such as "1.5M" or
// "250K ISK" into amounts and formats amounts back into that notation.
//
// The price grammar accepted by Decode is
//
//	price  = { any } number { space } [ unit ]
//	number = digit { digit | "." }
//	unit   = letter
//
// Anything before the first digit is skipped. The numeric value is read up to
// a second ".", so "1.5.3M" decodes as 1.5M. The unit letters K, M and B
// scale the number by 1e3, 1e6 and 1e9; any other letter, e.g. the "I" of a
// trailing "ISK", and a missing letter leave the number unscaled.
//
// Encode always picks the smallest unit that keeps the value below 1000, so
// Decode(Encode(x)) returns x but Encode(Decode(s)) need not return s.
package isk

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/lp-bulk/pkg/constants"
	"github.com/iwvelando/lp-bulk/pkg/mathutil"
)

var (
	// ErrMalformedPrice is wrapped by every ParseError.
	ErrMalformedPrice = errors.New("malformed price")

	// ErrOutOfRange is wrapped by every RangeError.
	ErrOutOfRange = errors.New("amount out of range")
)

// Units lists the unit letters in escalation order. The empty string is the
// unscaled tier.
var Units = []string{"", "K", "M", "B"}

var unitFactors = map[rune]float64{
	'K': constants.Thousand,
	'M': constants.Million,
	'B': constants.Billion,
}

// ParseError reports price text without a numeric prefix.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: no numeric value", ErrMalformedPrice, e.Text)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedPrice
}

// RangeError reports an amount that needs a unit beyond B, or one that is not
// a finite number.
type RangeError struct {
	Amount float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %v exceeds the K/M/B unit ladder", ErrOutOfRange, e.Amount)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Decode parses price text into an amount.
func Decode(text string) (float64, error) {
	runes := []rune(text)

	start := 0
	for start < len(runes) && !isDigit(runes[start]) {
		start++
	}
	if start == len(runes) {
		return 0, &ParseError{Text: text}
	}

	end := start
	for end < len(runes) && (isDigit(runes[end]) || runes[end] == '.') {
		end++
	}

	number := string(runes[start:end])
	if first := strings.IndexByte(number, '.'); first >= 0 {
		if second := strings.IndexByte(number[first+1:], '.'); second >= 0 {
			number = number[:first+1+second]
		}
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", &ParseError{Text: text}, err)
	}

	pos := end
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	if pos < len(runes) && unicode.IsLetter(runes[pos]) {
		if factor, ok := unitFactors[runes[pos]]; ok {
			value *= factor
		}
	}

	return value, nil
}

// Encode formats an amount as "<value> <unit>", escalating through Units while
// the value is at least 1000. The value is the shortest decimal form of the
// remaining float and is not rounded. Negative amounts keep a leading minus
// sign and escalate by magnitude, so -7.5e6 encodes as "-7.5 M" and a loss of
// 1e12 or more is out of range just like a gain.
func Encode(amount float64) (string, error) {
	if !mathutil.IsFinite(amount) {
		return "", &RangeError{Amount: amount}
	}

	sign := ""
	value := amount
	if value < 0 {
		sign = "-"
		value = -value
	}

	tier := 0
	for value/constants.UnitStep >= 1 {
		if tier == len(Units)-1 {
			return "", &RangeError{Amount: amount}
		}
		value /= constants.UnitStep
		tier++
	}

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(strconv.FormatFloat(value, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(Units[tier])
	return b.String(), nil
}

// Multiply decodes text, scales it by k and encodes the result.
func Multiply(text string, k float64) (string, error) {
	amount, err := Decode(text)
	if err != nil {
		return "", err
	}
	return Encode(amount * k)
}

// InRange reports whether Encode accepts amount.
func InRange(amount float64) bool {
	return mathutil.IsFinite(amount) && math.Abs(amount) < constants.MaxEncodable
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
