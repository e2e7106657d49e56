package models

import "testing"

func TestItem_Matches(t *testing.T) {
	it := Item{Title: "Buy Milk", Description: "two litres, skimmed"}

	tests := []struct {
		q    string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"milk", true},
		{"MILK", true},
		{"Skimmed", true},
		{"bread", false},
	}
	for _, tt := range tests {
		if got := it.Matches(tt.q); got != tt.want {
			t.Fatalf("Matches(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}
