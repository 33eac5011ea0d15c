package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTicket(t *testing.T) {
	airplane := Airplane{Rows: 20, SeatsInRow: 6}

	testCases := []struct {
		name          string
		row           int
		seat          int
		expectedField string
	}{
		{name: "First seat", row: 1, seat: 1},
		{name: "Last seat", row: 20, seat: 6},
		{name: "Middle seat", row: 10, seat: 3},
		{name: "Row zero", row: 0, seat: 3, expectedField: "row"},
		{name: "Row negative", row: -1, seat: 3, expectedField: "row"},
		{name: "Row too large", row: 21, seat: 3, expectedField: "row"},
		{name: "Seat zero", row: 10, seat: 0, expectedField: "seat"},
		{name: "Seat too large", row: 10, seat: 7, expectedField: "seat"},
		// Row is checked first, so it wins when both are out of range.
		{name: "Both out of range", row: 0, seat: 0, expectedField: "row"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTicket(tc.row, tc.seat, airplane)
			if tc.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var oor *SeatOutOfRangeError
			assert.ErrorAs(t, err, &oor)
			assert.Equal(t, tc.expectedField, oor.Field)
			assert.Equal(t, 1, oor.Min)
			assert.Equal(t, -1, oor.TicketIndex)
		})
	}
}

func TestValidateTicket_RangeBounds(t *testing.T) {
	airplane := Airplane{Rows: 5, SeatsInRow: 2}

	err := ValidateTicket(6, 1, airplane)
	var oor *SeatOutOfRangeError
	assert.ErrorAs(t, err, &oor)
	assert.Equal(t, 5, oor.Max)
	assert.Equal(t, 6, oor.Value)
	assert.Contains(t, err.Error(), "row number must be in available range")
}

func TestAirplaneCapacity(t *testing.T) {
	assert.Equal(t, 120, Airplane{Rows: 20, SeatsInRow: 6}.Capacity())
	assert.Equal(t, 0, Airplane{}.Capacity())
}

func TestCrewFullName(t *testing.T) {
	crew := Crew{FirstName: "Ada", LastName: "Sky"}
	assert.Equal(t, "Ada Sky", crew.FullName())
}
