// Package kernel provides the value objects shared by every aggregate: UUID
// identifiers, Money amounts, staff/customer Roles and table AccessTokens.
//
// All of them reject their zero value where it would be meaningless and are immutable,
// so they can be copied freely between goroutines.
package kernel
