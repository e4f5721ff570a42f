// Package counter holds the per-prefix, per-year sequence state used to
// number shipping documents.
package counter

import (
	"errors"
	"strings"

	"shipments/internal/pkg/errs"
)

var ErrCounterIsNotConstructed = errors.New("Counter must be created via NewCounter or RestoreCounter constructor")

// Counter is the last issued sequence for one (key, year). Callers read and
// advance it only while holding its row lock.
type Counter struct {
	key  string
	year int
	last int64

	isConstructed bool
}

// KeyFor returns the counter key of a number prefix. Numbers are unique per
// prefix and year, so tenants that resolve to the same prefix share one
// sequence, and so does the legacy scheme when its prefix matches a tenant's.
func KeyFor(prefix string) string {
	return strings.ToUpper(strings.TrimSpace(prefix))
}

// NewCounter starts a counter at zero.
func NewCounter(key string, year int) (*Counter, error) {
	return RestoreCounter(key, year, 0)
}

func RestoreCounter(key string, year int, last int64) (*Counter, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errs.NewValueIsRequiredError("key")
	}
	if year < 1 || year > 9999 {
		return nil, errs.NewValueIsOutOfRangeError("year", year, 1, 9999)
	}
	if last < 0 {
		return nil, errs.NewValueIsOutOfRangeError("last", last, 0, "unbounded")
	}
	return &Counter{key: key, year: year, last: last, isConstructed: true}, nil
}

func (c *Counter) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCounterIsNotConstructed
	}
	return nil
}

func (c *Counter) Key() string {
	return c.key
}

func (c *Counter) Year() int {
	return c.year
}

func (c *Counter) Last() int64 {
	return c.last
}

// Next advances the counter and returns the new sequence.
func (c *Counter) Next() int64 {
	c.last++
	return c.last
}
