package player

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state                       State
		active, canPause, canResume bool
	}{
		{Stopped, false, false, false},
		{Playing, true, true, false},
		{Paused, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
			if got := tt.state.CanPause(); got != tt.canPause {
				t.Errorf("CanPause() = %v, want %v", got, tt.canPause)
			}
			if got := tt.state.CanResume(); got != tt.canResume {
				t.Errorf("CanResume() = %v, want %v", got, tt.canResume)
			}
		})
	}
}

func TestState_MarshalText(t *testing.T) {
	b, _ := Paused.MarshalText()
	if string(b) != "paused" {
		t.Errorf("MarshalText() = %q, want paused", b)
	}
}

func TestState_UnmarshalText(t *testing.T) {
	for _, want := range []State{Stopped, Playing, Paused} {
		b, _ := want.MarshalText()
		var got State
		if err := got.UnmarshalText(b); err != nil || got != want {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, got, err)
		}
	}
	var s State
	if err := s.UnmarshalText([]byte("rewinding")); err == nil {
		t.Error("expected error for unknown state")
	}
}
