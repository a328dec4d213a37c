package history

import (
	"encoding/json"
	"fmt"

	"orders/internal/pkg/errs"
)

// Payload is the closed set of ledger payloads. Only types in this package implement it.
type Payload interface {
	Kind() Kind
	isPayload()
}

type CreatedPayload struct {
	CreatedBy string `json:"createdBy"`
}

type ItemAddedPayload struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type ItemRemovedPayload struct {
	ProductID int64 `json:"productId"`
}

// StateChangedPayload records a transition or a lifecycle note.
type StateChangedPayload struct {
	FromState string `json:"fromState"`
	ToState   string `json:"toState"`
}

func (CreatedPayload) Kind() Kind      { return KindCreated }
func (ItemAddedPayload) Kind() Kind    { return KindItemAdded }
func (ItemRemovedPayload) Kind() Kind  { return KindItemRemoved }
func (StateChangedPayload) Kind() Kind { return KindStateChanged }

func (CreatedPayload) isPayload()      {}
func (ItemAddedPayload) isPayload()    {}
func (ItemRemovedPayload) isPayload()  {}
func (StateChangedPayload) isPayload() {}

// MarshalPayload encodes p as its camelCase JSON document.
func MarshalPayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, errs.NewValueIsRequiredError("payload")
	}
	return json.Marshal(p)
}

// UnmarshalPayload decodes data as the payload type selected by kind.
func UnmarshalPayload(kind Kind, data []byte) (Payload, error) {
	switch kind {
	case KindCreated:
		return decode[CreatedPayload](kind, data)
	case KindItemAdded:
		return decode[ItemAddedPayload](kind, data)
	case KindItemRemoved:
		return decode[ItemRemovedPayload](kind, data)
	case KindStateChanged:
		return decode[StateChangedPayload](kind, data)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid history kind", kind))
	}
}

func decode[P Payload](kind Kind, data []byte) (Payload, error) {
	var p P
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", fmt.Errorf("decode %s: %w", kind, err))
	}
	return p, nil
}
