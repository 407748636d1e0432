package intent

import "testing"

func TestExtractOrderID(t *testing.T) {
	tests := []struct {
		message string
		want    string
		found   bool
	}{
		{"please track order O42 now", "O42", true},
		{"no id here", "", false},
		{"o7 lower case", "O7", true},
		{"O1 then O2", "O1", true}, // first match wins
		{"order", "", false},       // the letter alone is not an id
		{"ABCO123X", "O123", true}, // substring match, digits end the token
		{"", "", false},
	}
	for _, tt := range tests {
		got, found := ExtractOrderID(tt.message)
		if found != tt.found || got != tt.want {
			t.Errorf("ExtractOrderID(%q) = (%q, %v), want (%q, %v)",
				tt.message, got, found, tt.want, tt.found)
		}
	}
}
