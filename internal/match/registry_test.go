package match

import "testing"

func TestKBORegisterEndToEnd(t *testing.T) {
	facts := Facts{
		FirstName:     "Jane",
		LastName:      "Doe",
		CompanyName:   "Analytus ICT Services",
		CompanyNumber: "BE 0456.789.123",
	}
	text := `Kruispuntbank van Ondernemingen
Uittreksel
Analytus ICT Services
Ondernemingsnummer: 0456789123
Bestuurder: Jane Doe`

	res := KBORegister(text, facts)
	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.ErrorMessage())
	}
	for _, check := range []string{"company_name_match", "company_number_match", "manager_name_match"} {
		if !res.Bool(check) {
			t.Errorf("%s: got false, want true", check)
		}
	}
}

func TestKBORegisterNumberPunctuationInsensitive(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		text     string
		want     bool
	}{
		{"dotted vs plain", "BE 0123.456.789", "nr 0123456789", true},
		{"plain vs dotted", "0123456789", "BE 0123.456.789", true},
		{"spaced text", "0123456789", "0123 456 789", true},
		{"different number", "0123456789", "BE 0999.888.777", false},
		{"empty declared", "", "0123456789", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := KBORegister(tc.text, Facts{CompanyNumber: tc.declared, CompanyName: "x", FirstName: "x", LastName: "x"})
			if got := res.Bool("company_number_match"); got != tc.want {
				t.Errorf("company_number_match: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestKBORegisterManagerName(t *testing.T) {
	facts := Facts{FirstName: "Jane", LastName: "Doe", CompanyName: "x", CompanyNumber: "1"}
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"full name", "zaakvoerder jane doe", true},
		{"parts apart", "doe consulting, beheerd door jane", true},
		{"missing last", "jane runs this", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := KBORegister(tc.text, facts)
			if got := res.Bool("manager_name_match"); got != tc.want {
				t.Errorf("manager_name_match: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGazette(t *testing.T) {
	facts := Facts{CompanyName: "Analytus ICT Services", CompanyNumber: "BE 0456.789.123"}
	text := "Bijlagen bij het Belgisch Staatsblad — oprichting ANALYTUS ICT SERVICES — 0456.789.123"

	res := Gazette(text, facts)
	if !res.Bool("company_name_match") {
		t.Error("company_name_match: got false, want true")
	}
	if !res.Bool("company_number_match") {
		t.Error("company_number_match: got false, want true")
	}

	miss := Gazette("some unrelated publication", facts)
	if miss.Bool("company_name_match") || miss.Bool("company_number_match") {
		t.Error("unrelated text must not match")
	}
}
