// Package queries contains read operations.
//
// Query handlers read straight from the database with raw SQL and return flat read
// models shaped for one screen each: the customer menu, order tracking, the waiter and
// kitchen boards, the kitchen ticket, daily sales and the table list.
package queries
