package model

import "testing"

func TestVideoReference_DurationString(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{9, "0:09"},
		{65, "1:05"},
		{600, "10:00"},
		{3661, "1:01:01"},
		{7325, "2:02:05"},
	}

	for _, test := range tests {
		v := VideoReference{Duration: test.seconds}
		result := v.DurationString()
		if result != test.expected {
			t.Errorf("DurationString(%d) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}
