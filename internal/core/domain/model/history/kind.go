package history

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Kind names the type of a ledger entry. The value is also the persisted representation.
type Kind string

const (
	KindCreated      Kind = "created"
	KindItemAdded    Kind = "item_added"
	KindItemRemoved  Kind = "item_removed"
	KindStateChanged Kind = "state_changed"
)

func Kinds() []Kind {
	return []Kind{KindCreated, KindItemAdded, KindItemRemoved, KindStateChanged}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid history kind", s))
}

func (k Kind) String() string {
	return string(k)
}
