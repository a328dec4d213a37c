// Package queries contains read-only operations over orders, their history and products.
// Query handlers read through the repository ports outside of any unit of work.
package queries
