package main

import (
	"testing"

	"github.com/aretw0/snaplist/pkg/display"
)

func TestFormatRow(t *testing.T) {
	tests := []struct {
		row  display.Row
		want string
	}{
		{display.Row{Position: 0, Text: "Buy milk"}, "  0  Buy milk"},
		{display.Row{Position: 1, Text: "Walk dog", ImagePath: "/p/a.jpg", ShowImage: true}, "  1  Walk dog  [photo: /p/a.jpg]"},
		{display.Row{Position: 12, Text: "Call mom", ImagePath: "/gone.jpg"}, " 12  Call mom  [photo missing]"},
	}
	for _, tt := range tests {
		if got := formatRow(tt.row); got != tt.want {
			t.Errorf("formatRow(%+v) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestParsePosition(t *testing.T) {
	if pos, err := parsePosition("3"); err != nil || pos != 3 {
		t.Errorf("parsePosition(3) = %d, %v", pos, err)
	}
	if _, err := parsePosition("three"); err == nil {
		t.Error("expected error for non-numeric position")
	}
}
