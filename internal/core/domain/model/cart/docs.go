// Package cart aggregates line items the same way for every role: the customer cart,
// the menu grouped by category and the kitchen order ticket all go through it.
//
// Everything in the package is pure and deterministic. Cart values are immutable; each
// operation returns a new Cart and leaves the receiver untouched.
package cart
