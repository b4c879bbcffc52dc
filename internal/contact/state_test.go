package contact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from State
		ev   event
		want State
		ok   bool
	}{
		{StateIdle, eventSubmit, StateSending, true},
		{StateSending, eventSent, StateSucceeded, true},
		{StateSucceeded, eventExpire, StateIdle, true},
		{StateSucceeded, eventDismiss, StateIdle, true},
		{StateIdle, eventDismiss, StateIdle, false},
		{StateSending, eventSubmit, StateSending, false},
		{StateSending, eventDismiss, StateSending, false},
		{StateSucceeded, eventSubmit, StateSucceeded, false},
		{State("bogus"), eventSubmit, State("bogus"), false},
	}
	for _, tt := range tests {
		got, err := transition(tt.from, tt.ev)
		require.Equal(t, tt.want, got, "%s --(%s)-->", tt.from, tt.ev)
		if tt.ok {
			require.NoError(t, err)
		} else {
			require.Error(t, err)
		}
	}
}
