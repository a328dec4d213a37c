package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"validation":   {errs.NewValueIsRequiredError("createdBy"), http.StatusBadRequest},
		"joined":       {errors.Join(errs.NewValueIsInvalidError("a"), errs.NewValueIsInvalidError("b")), http.StatusBadRequest},
		"not found":    {errs.NewObjectNotFoundError("order", int64(1)), http.StatusNotFound},
		"wrapped":      {fmt.Errorf("load: %w", errs.NewObjectNotFoundError("order", int64(1))), http.StatusNotFound},
		"state":        {errs.NewInvalidStateError("add items", "completed", "created"), http.StatusConflict},
		"persistence":  {errs.NewPersistenceError("orders.get", errors.New("connection reset")), http.StatusInternalServerError},
		"unclassified": {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}
