package match

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestIDCardNameOrderIndependent(t *testing.T) {
	facts := Facts{FirstName: "Jane", LastName: "Doe"}
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"first last", "identiteitskaart Jane Doe geldig tot 01.05.2030", true},
		{"last first", "identiteitskaart DOE Jane geldig tot 01.05.2030", true},
		{"separated parts", "Doe ... something ... Jane", true},
		{"only first", "Jane Smith", false},
		{"embedded in word", "Janet Doering", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := IDCard(tc.text, facts, testNow)
			if res.Failed() {
				t.Fatalf("unexpected error: %s", res.ErrorMessage())
			}
			if got := res.Bool("name_match"); got != tc.want {
				t.Errorf("name_match: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIDCardExpiryPicksLatestFuture(t *testing.T) {
	facts := Facts{FirstName: "Jane", LastName: "Doe"}
	text := "Jane Doe born 01.01.1990 issued 01.01.2023 geldig tot 01.05.2030"

	res := IDCard(text, facts, testNow)
	if !res.Bool("expiry_valid") {
		t.Error("expiry_valid: got false, want true")
	}
	if got, _ := res.Field("expiry_date"); got != "2030-05-01" {
		t.Errorf("expiry_date: got %v, want 2030-05-01", got)
	}
}

func TestIDCardNoFutureDate(t *testing.T) {
	res := IDCard("Jane Doe expired 01.01.2020", Facts{FirstName: "Jane", LastName: "Doe"}, testNow)
	if res.Bool("expiry_valid") {
		t.Error("expiry_valid: got true, want false")
	}
	if got, _ := res.Field("expiry_date"); got != NotFound {
		t.Errorf("expiry_date: got %v, want %q", got, NotFound)
	}
}
