// Package history models the append-only ledger of order mutations.
//
// Every successful mutation of an order yields exactly one Item. The item's Kind is
// derived from its Payload, so a kind and a payload of another kind cannot be stored
// together. Payloads serialize to camelCase JSON:
//
//	created        {"createdBy": "alice"}
//	item_added     {"productId": 7, "quantity": 3}
//	item_removed   {"productId": 7}
//	state_changed  {"fromState": "created", "toState": "processing"}
//
// A state_changed entry is also used for lifecycle notes, in which case toState is a
// processing step name such as "packing_started" rather than an order state.
package history
