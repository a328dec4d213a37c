package http

import (
	"fmt"
	"strconv"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/pagination"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var pageSizes = pagination.SizeConfig{Default: 20, Max: 200}

func pathID(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// page reads page and pageSize. A missing page is the first one, a missing or
// oversized pageSize is clamped.
func page(ctx echo.Context) (int, int, error) {
	number, err := optionalInt(ctx, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	size, err := optionalInt(ctx, "pageSize", 0)
	if err != nil {
		return 0, 0, err
	}
	return number, pagination.ClampSize(size, pageSizes), nil
}

func optionalInt(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func ids(ctx echo.Context, name string) ([]int64, error) {
	raw := ctx.QueryParams()[name]
	out := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q: %w", r, err))
		}
		out = append(out, id)
	}
	return out, nil
}

func optionalDecimal(ctx echo.Context, name string) (*decimal.Decimal, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil //nolint:nilnil // absent filter
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &d, nil
}
