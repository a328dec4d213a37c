// Package processing describes the inbound workflow events reported by the fulfillment
// service for orders that are being processed.
package processing

import (
	"fmt"
	"time"

	"orders/internal/pkg/errs"
)

// Kind names a workflow event.
type Kind string

const (
	KindApprovalReceived Kind = "approval_received"
	KindPackingStarted   Kind = "packing_started"
	KindPackingFinished  Kind = "packing_finished"
	KindDeliveryStarted  Kind = "delivery_started"
	KindDeliveryFinished Kind = "delivery_finished"
)

func (k Kind) String() string {
	return string(k)
}

// Event is one workflow notification for an order. Successful is meaningful for
// approval received, packing finished and delivery finished; an approval that was
// rejected arrives with Successful set to false.
type Event struct {
	Kind          Kind
	OccurredAt    time.Time
	Successful    bool
	FailureReason string
}

// Step is a lifecycle milestone recorded as a note while the order is processing.
type Step string

const (
	StepApprovalReceived Step = "approval_received"
	StepPackingStarted   Step = "packing_started"
	StepPackingFinished  Step = "packing_finished"
	StepDeliveryStarted  Step = "delivery_started"
)

func Steps() []Step {
	return []Step{StepApprovalReceived, StepPackingStarted, StepPackingFinished, StepDeliveryStarted}
}

// ParseStep accepts only the four recorded milestones.
func ParseStep(s string) (Step, error) {
	for _, step := range Steps() {
		if string(step) == s {
			return step, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%q is not a processing step", s))
}

func (s Step) String() string {
	return string(s)
}
