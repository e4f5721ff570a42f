package bol

import (
	"fmt"
	"strconv"
	"strings"

	"shipments/internal/pkg/errs"
)

// The year segment is always four digits.
const (
	MinYear = 1000
	MaxYear = 9999
)

// Number is a formatted document number: {PREFIX}-{YYYY}-{NNNN}.
// The sequence is zero-padded to four digits and simply grows wider past 9999.
type Number struct {
	prefix   string
	year     int
	sequence int64
}

func NewNumber(prefix string, year int, sequence int64) (Number, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return Number{}, errs.NewValueIsRequiredError("prefix")
	}
	if year < MinYear || year > MaxYear {
		return Number{}, errs.NewValueIsOutOfRangeError("year", year, MinYear, MaxYear)
	}
	if sequence < 1 {
		return Number{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	return Number{prefix: prefix, year: year, sequence: sequence}, nil
}

// ParseNumber reads a number back from its string form. The prefix may itself
// contain dashes, so year and sequence are taken from the right.
func ParseNumber(s string) (Number, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("bol number", fmt.Errorf("%q is not PREFIX-YYYY-NNNN", s))
	}

	n := len(parts)
	year, err := strconv.Atoi(parts[n-2])
	if err != nil || len(parts[n-2]) != 4 {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("bol number", fmt.Errorf("%q has no four digit year", s))
	}
	seq, err := strconv.ParseInt(parts[n-1], 10, 64)
	if err != nil || len(parts[n-1]) < 4 {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("bol number", fmt.Errorf("%q has no sequence", s))
	}

	return NewNumber(strings.Join(parts[:n-2], "-"), year, seq)
}

func (n Number) Prefix() string {
	return n.prefix
}

func (n Number) Year() int {
	return n.year
}

func (n Number) Sequence() int64 {
	return n.sequence
}

func (n Number) IsZero() bool {
	return n.prefix == ""
}

func (n Number) String() string {
	return fmt.Sprintf("%s-%d-%04d", n.prefix, n.year, n.sequence)
}
