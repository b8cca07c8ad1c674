package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{input: "AGENT", want: RoleAgent},
		{input: "agent", want: RoleAgent},
		{input: " Customer ", want: RoleCustomer},
		{input: "CUSTOMER", want: RoleCustomer},
		{input: "admin", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			role, err := ParseRole(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, role)
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    TicketCategory
		wantErr bool
	}{
		{input: "PREBOOKING", want: CategoryPrebooking},
		{input: "prebooking", want: CategoryPrebooking},
		{input: " postBooking ", want: CategoryPostbooking},
		{input: "inflight", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			category, err := ParseCategory(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, category)
		})
	}
}

func TestTicketAssignedTo(t *testing.T) {
	agentID := "agent-1"
	assigned := Ticket{AgentID: &agentID}
	unassigned := Ticket{}

	assert.True(t, assigned.AssignedTo("agent-1"))
	assert.False(t, assigned.AssignedTo("agent-2"))
	assert.False(t, unassigned.AssignedTo("agent-1"))
}
