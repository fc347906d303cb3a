// Package services provides domain services that work on aggregates without belonging
// to any single one of them.
//
// The package includes:
//   - KitchenTicketRenderer: renders the kitchen order ticket (KOT) of a confirmed order
//     as fixed-width text, grouping lines by category the same way the customer cart does
package services
