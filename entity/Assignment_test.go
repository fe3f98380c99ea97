package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from AssignmentStatus
		to   AssignmentStatus
		ok   bool
	}{
		{StatusAssigned, StatusPickedUp, true},
		{StatusAssigned, StatusCancelled, true},
		{StatusAssigned, StatusDelivered, false},
		{StatusAssigned, StatusInTransit, false},
		{StatusPickedUp, StatusInTransit, true},
		{StatusPickedUp, StatusDelivered, true},
		{StatusPickedUp, StatusAssigned, false},
		{StatusPickedUp, StatusCancelled, false},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusPickedUp, false},
		{StatusDelivered, StatusDelivered, false},
		{StatusDelivered, StatusAssigned, false},
		{StatusCancelled, StatusPickedUp, false},
	}
	for _, c := range cases {
		a := Assignment{Status: c.from}
		assert.Equalf(t, c.ok, a.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}
