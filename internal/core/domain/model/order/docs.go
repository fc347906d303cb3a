// Package order implements the order lifecycle shared by the customer, waiter and
// kitchen roles.
//
// The package includes:
//   - Order: the aggregate root holding contact, captured line items, total and status
//   - Item: an order line with the menu price captured at placement
//   - Status: the state machine Pending -> Confirmed -> Preparing -> Ready -> Served -> Paid
//   - ChangeEvent: the record published on the change feed after every state change
//
// Key business rules:
//   - an order needs a customer phone number and at least one item
//   - the total is computed once, at placement
//   - status moves forward one step at a time and only by the authorized role:
//     waiter confirms, kitchen prepares and marks ready, waiter serves and bills
package order
