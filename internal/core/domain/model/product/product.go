// Package product holds the immutable catalogue entry referenced by order items.
package product

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product has a non-blank trimmed name and a strictly positive price.
type Product struct {
	id    int64
	name  string
	price decimal.Decimal

	isConstructed bool
}

func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a persisted product.
func RestoreProduct(id int64, name string, price decimal.Decimal) (*Product, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	p, err := NewProduct(name, price)
	if err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() int64 {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() decimal.Decimal {
	return p.price
}

func (p *Product) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = trimmed
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}
	p.price = price
	return nil
}
