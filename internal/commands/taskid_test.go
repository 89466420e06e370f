package commands

import (
	"errors"
	"testing"
)

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		args    []string
		want    int64
		wantErr string
	}{
		{args: []string{"5"}, want: 5},
		{args: []string{"#12"}, want: 12},
		{args: []string{" 3 "}, want: 3},
		{args: []string{"0"}, wantErr: "invalid task id: 0"},
		{args: []string{"-1"}, wantErr: "invalid task id: -1"},
		{args: []string{"abc"}, wantErr: "invalid task id: abc"},
		{args: []string{"1.5"}, wantErr: "invalid task id: 1.5"},
		{args: []string{"99999999999999999999"}, wantErr: "invalid task id: 99999999999999999999"},
		{args: []string{"1", "2"}, wantErr: "too many arguments: 2"},
	}

	for _, tt := range tests {
		got, err := ParseTaskID(tt.args)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ParseTaskID(%q): got err %v, want %q", tt.args, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTaskID(%q): unexpected error %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTaskID(%q) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestParseTaskID_Required(t *testing.T) {
	if _, err := ParseTaskID(nil); !errors.Is(err, ErrTaskIDRequired) {
		t.Errorf("expected ErrTaskIDRequired, got %v", err)
	}
}
