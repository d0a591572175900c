package match

import (
	"fmt"
	"testing"
	"time"
)

func moralityText(issued time.Time) string {
	return fmt.Sprintf("Uittreksel uit het strafregister\nJane Doe\nDatum: %s\nModel 596.1", issued.Format("02/01/2006"))
}

func TestMoralityDateWindow(t *testing.T) {
	facts := Facts{FirstName: "Jane", LastName: "Doe"}
	tests := []struct {
		name   string
		issued time.Time
		want   bool
	}{
		{"today", testNow, true},
		{"29 days old", testNow.AddDate(0, 0, -29), true},
		{"exactly 30 days old", testNow.AddDate(0, 0, -30), true},
		{"31 days old", testNow.AddDate(0, 0, -31), false},
		{"future date", testNow.AddDate(0, 0, 7), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Morality(moralityText(tc.issued), facts, testNow)
			if res.Failed() {
				t.Fatalf("unexpected error: %s", res.ErrorMessage())
			}
			if got := res.Bool("date_valid"); got != tc.want {
				t.Errorf("date_valid: got %v, want %v", got, tc.want)
			}
			if got, _ := res.Field("certificate_date"); got != tc.issued.Format("2006-01-02") {
				t.Errorf("certificate_date: got %v, want %s", got, tc.issued.Format("2006-01-02"))
			}
		})
	}
}

func TestMoralityNoDate(t *testing.T) {
	res := Morality("Uittreksel strafregister Jane Doe, geen datum vermeld", Facts{FirstName: "Jane", LastName: "Doe"}, testNow)
	if res.Bool("date_valid") {
		t.Error("date_valid: got true, want false")
	}
	if got, _ := res.Field("certificate_date"); got != nil {
		t.Errorf("certificate_date: got %v, want nil", got)
	}
}

func TestMoralityName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"full name", "afgeleverd aan jane doe op verzoek", true},
		{"parts with punctuation", "DOE, Jane (geboren 1990)", true},
		{"wrong person", "afgeleverd aan john smith", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Morality(tc.text, Facts{FirstName: "Jane", LastName: "Doe"}, testNow)
			if got := res.Bool("name_valid"); got != tc.want {
				t.Errorf("name_valid: got %v, want %v", got, tc.want)
			}
		})
	}
}
