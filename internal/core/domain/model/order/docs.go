// Package order provides the Order aggregate, its line items and the state machine that
// governs the order lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding identity, authorship and the current State
//   - Item: a product line of an order, soft-deleted only
//   - State: the lifecycle states created, processing, completed and cancelled
//   - Transition: the named, guarded moves between states
//
// Key business rules:
//   - Orders start in Created and may receive or lose items only there
//   - Completed and Cancelled are terminal
//   - Every rejected move reports the attempted action, the current state and the states the
//     action is accepted from (errs.InvalidStateError)
//
// State diagram:
//
//	created ──> processing ──> completed
//	   │             │
//	   └──> cancelled <┘
package order
