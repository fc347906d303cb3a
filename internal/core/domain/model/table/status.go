package table

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Status is the availability of a table.
type Status int

const (
	Unknown Status = iota
	Available
	Occupied
)

var statusNames = map[Status]string{
	Unknown:   "unknown",
	Available: "available",
	Occupied:  "occupied",
}

func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "available":
		return Available, nil
	case "occupied":
		return Occupied, nil
	case "":
		return Unknown, errs.NewValueIsRequiredError("table status")
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("table status", fmt.Errorf("%q is not a table status", s))
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return statusNames[Unknown]
}

func (s Status) Validate() error {
	if s != Available && s != Occupied {
		return errs.NewValueIsInvalidErrorWithCause("table status", fmt.Errorf("%d is not a table status", s))
	}
	return nil
}
