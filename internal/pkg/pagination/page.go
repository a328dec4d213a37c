// Package pagination holds the 1-based page window shared by searches.
package pagination

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// MaxPageSize bounds a single page.
const MaxPageSize = 1000

// Page selects entries [(Number-1)*Size, Number*Size).
type Page struct {
	number int
	size   int
}

// NewPage validates that both number and size are positive and size does not exceed MaxPageSize.
func NewPage(number, size int) (Page, error) {
	if number <= 0 {
		return Page{}, errs.NewValueIsInvalidErrorWithCause("pageNumber", fmt.Errorf("%d is not greater than 0", number))
	}
	if size <= 0 || size > MaxPageSize {
		return Page{}, errs.NewValueIsOutOfRangeError("pageSize", size, 1, MaxPageSize)
	}
	return Page{number: number, size: size}, nil
}

func (p Page) Number() int { return p.number }

func (p Page) Size() int { return p.size }

// Offset is the number of entries skipped before the page.
func (p Page) Offset() int {
	return (p.number - 1) * p.size
}

// Limit is the maximum number of entries in the page.
func (p Page) Limit() int {
	return p.size
}

// IsZero reports whether p was not produced by NewPage.
func (p Page) IsZero() bool {
	return p.number == 0
}

// Window returns the sub-slice of items covered by p, already ordered by the caller.
func Window[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+p.Limit(), len(items))
	return items[start:end]
}

// SizeConfig configures page size defaults for transport inputs.
type SizeConfig struct {
	Default int
	Max     int
}

// ClampSize applies defaults and limits for page sizes coming from query strings.
func ClampSize(value int, cfg SizeConfig) int {
	size := value
	if size <= 0 {
		size = cfg.Default
	}
	if cfg.Max > 0 && size > cfg.Max {
		size = cfg.Max
	}
	if size <= 0 {
		size = 1
	}
	return size
}
