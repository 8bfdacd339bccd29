// Package requirements parses the requirements block of an LP store offer
// into structured line items.
//
// A block has the form
//
//	"Requirements: " entry "ISK" entry "ISK" ... entry "ISK"
//	entry = name [ "(" count ")" ] "-" price
//
// The currency marker doubles as the entry separator because every entry ends
// with a price. Item names therefore must not contain "ISK".
package requirements

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/lp-bulk/pkg/constants"
	"github.com/iwvelando/lp-bulk/pkg/isk"
)

// Requirement is one required sub-item of an offer.
type Requirement struct {
	Name      string
	Count     int
	UnitPrice float64
}

// Amount returns the listed price of the requirement line.
func (r Requirement) Amount() float64 {
	return r.UnitPrice
}

// String renders the requirement as a block entry, e.g. "Tritanium (50) - 5 K ISK".
// An unencodable price is rendered as a plain number.
func (r Requirement) String() string {
	price, err := isk.Encode(r.UnitPrice)
	if err != nil {
		price = strconv.FormatFloat(r.UnitPrice, 'f', -1, 64) + " "
	}
	name := r.Name
	if r.Count != 1 {
		name = fmt.Sprintf("%s (%d)", r.Name, r.Count)
	}
	return fmt.Sprintf("%s %s %s%s", name, constants.PriceSeparator, price, constants.CurrencyMarker)
}

// ErrMalformedEntry is wrapped by FragmentError for entries that are
// structurally broken rather than carrying a bad price.
var ErrMalformedEntry = errors.New("malformed requirement entry")

// FragmentError identifies the entry of a requirements block that failed to
// parse. Index counts non-empty entries from zero.
type FragmentError struct {
	Index    int
	Fragment string
	Err      error
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("requirement %d %q: %v", e.Index, e.Fragment, e.Err)
}

func (e *FragmentError) Unwrap() error {
	return e.Err
}

// Parse converts a requirements block into requirements in block order. A
// blank block, or one holding only the label, yields no requirements.
//
// Every non-empty entry must carry a "-" separated price. Dropping a broken
// entry would understate the aggregate cost, so it is reported as a
// *FragmentError instead.
func Parse(block string) ([]Requirement, error) {
	body := strings.TrimSpace(block)
	body = strings.TrimPrefix(body, constants.RequirementsLabel)

	var reqs []Requirement
	for _, fragment := range strings.Split(body, constants.CurrencyMarker) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		req, err := parseEntry(fragment)
		if err != nil {
			return nil, &FragmentError{Index: len(reqs), Fragment: fragment, Err: err}
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// parseEntry splits on the last separator so hyphenated item names such as
// "Mid-grade Amulet Alpha" keep their hyphen.
func parseEntry(fragment string) (Requirement, error) {
	sep := strings.LastIndex(fragment, constants.PriceSeparator)
	if sep < 0 {
		return Requirement{}, fmt.Errorf("%w: missing %q price separator", isk.ErrMalformedPrice, constants.PriceSeparator)
	}

	name, count, err := splitCount(strings.TrimSpace(fragment[:sep]))
	if err != nil {
		return Requirement{}, err
	}
	if name == "" {
		return Requirement{}, fmt.Errorf("%w: empty item name", ErrMalformedEntry)
	}

	price, err := isk.Decode(strings.TrimSpace(fragment[sep+len(constants.PriceSeparator):]))
	if err != nil {
		return Requirement{}, err
	}

	return Requirement{Name: name, Count: count, UnitPrice: price}, nil
}

// splitCount detects an optional trailing parenthesized count, e.g.
// "Tritanium (50)". A missing count is the normal single-unit case.
func splitCount(nameAndCount string) (string, int, error) {
	if !strings.HasSuffix(nameAndCount, ")") {
		return nameAndCount, 1, nil
	}
	open := strings.LastIndex(nameAndCount, "(")
	if open < 0 {
		return nameAndCount, 1, nil
	}
	digits := nameAndCount[open+1 : len(nameAndCount)-1]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return nameAndCount, 1, nil
	}

	count, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, fmt.Errorf("%w: count %q: %v", ErrMalformedEntry, digits, err)
	}
	if count < 1 {
		return "", 0, fmt.Errorf("%w: count must be at least 1, got %d", ErrMalformedEntry, count)
	}
	return strings.TrimSpace(nameAndCount[:open]), count, nil
}

// Format renders requirements back into block text.
func Format(reqs []Requirement) string {
	if len(reqs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(constants.RequirementsLabel)
	b.WriteByte(' ')
	for _, req := range reqs {
		b.WriteString(req.String())
	}
	return b.String()
}
