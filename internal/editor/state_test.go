package editor

import "testing"

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		wantErr  bool
	}{
		{"up", Up, false},
		{"down", Down, false},
		{"left", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q): expected error %v, got %v", tt.input, tt.wantErr, err)
		}
		if got != tt.expected {
			t.Errorf("ParseDirection(%q): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestStateText(t *testing.T) {
	for state, expected := range map[State]string{
		Viewing:          "viewing",
		Editing:          "editing",
		ConfirmingDelete: "confirming-delete",
	} {
		text, err := state.MarshalText()
		if err != nil || string(text) != expected {
			t.Errorf("Expected %q, got %q (%v)", expected, text, err)
		}
	}
}

func TestStateUnmarshalText(t *testing.T) {
	var s State
	if err := s.UnmarshalText([]byte("confirming-delete")); err != nil || s != ConfirmingDelete {
		t.Errorf("Expected ConfirmingDelete, got %s (%v)", s, err)
	}
	if err := s.UnmarshalText([]byte("dancing")); err == nil {
		t.Error("Expected error for unknown state")
	}
}
