package validators

import (
	"strings"
	"testing"
)

func TestValidateCaseID(t *testing.T) {
	if msg := ValidateCaseID("2024-0001"); msg != "" {
		t.Errorf("valid case id rejected: %s", msg)
	}
	for _, bad := range []string{"", "20240001", "24-0001", "2024-001", "ABCD-0001"} {
		if ValidateCaseID(bad) == "" {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestValidateDateText(t *testing.T) {
	if msg := ValidateDateText("2024-01-31", "la fecha", false); msg != "" {
		t.Errorf("valid date rejected: %s", msg)
	}
	if ValidateDateText("31/01/2024", "la fecha", false) == "" {
		t.Error("expected error for non ISO date")
	}
	if msg := ValidateDateText("", "la fecha", true); msg != "" {
		t.Errorf("blank date should pass with allowBlank: %s", msg)
	}
	if ValidateDateText("", "la fecha", false) == "" {
		t.Error("blank date should fail without allowBlank")
	}
}

func TestValidateProductDates(t *testing.T) {
	if msg := ValidateProductDates("P1", "2024-01-01", "2024-02-01"); msg != "" {
		t.Errorf("valid pair rejected: %s", msg)
	}
	if ValidateProductDates("P1", "2024-02-01", "2024-01-01") == "" {
		t.Error("occurrence after discovery should fail")
	}
	if ValidateProductDates("P1", "2024-02-01", "2024-02-01") == "" {
		t.Error("equal dates should fail")
	}
	if ValidateProductDates("P1", "2099-01-01", "2099-02-01") == "" {
		t.Error("future dates should fail")
	}
}

func TestValidateAmountText(t *testing.T) {
	if msg := ValidateAmountText("1500.50", "El monto", false); msg != "" {
		t.Errorf("valid amount rejected: %s", msg)
	}
	if ValidateAmountText("-10", "El monto", false) == "" {
		t.Error("negative amount should fail")
	}
	if ValidateAmountText("abc", "El monto", false) == "" {
		t.Error("non numeric amount should fail")
	}
	if ValidateAmountText("1234567890123", "El monto", false) == "" {
		t.Error("amount over 12 digits should fail")
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1500.50", 1500.50},
		{"1,500.50", 1500.50},
		{"", 0},
		{"no-numerico", 0},
		{"-5", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidateEmailAndPhoneLists(t *testing.T) {
	if msg := ValidateEmailList("a@b.com; c@d.pe", "Correos"); msg != "" {
		t.Errorf("valid email list rejected: %s", msg)
	}
	if ValidateEmailList("a@b.com; malo", "Correos") == "" {
		t.Error("bad email in list should fail")
	}
	if msg := ValidatePhoneList("+51987654321; 987654", "Teléfonos"); msg != "" {
		t.Errorf("valid phone list rejected: %s", msg)
	}
	if ValidatePhoneList("12", "Teléfonos") == "" {
		t.Error("short phone should fail")
	}
}

func TestValidateIDFormats(t *testing.T) {
	if msg := ValidateReclamoID("C12345678"); msg != "" {
		t.Errorf("valid claim id rejected: %s", msg)
	}
	if ValidateReclamoID("X12345678") == "" {
		t.Error("claim id without C prefix should fail")
	}
	if msg := ValidateCodigoAnalitica("4312345678"); msg != "" {
		t.Errorf("valid analytics code rejected: %s", msg)
	}
	if ValidateCodigoAnalitica("9912345678") == "" {
		t.Error("analytics code with bad prefix should fail")
	}
	if msg := ValidateRiskID("RSK-123456"); msg != "" {
		t.Errorf("valid risk id rejected: %s", msg)
	}
	if ValidateRiskID("RSK-12345") == "" {
		t.Error("short risk id should fail")
	}
	if msg := ValidateNormID("NRM-12345"); msg != "" {
		t.Errorf("valid norm id rejected: %s", msg)
	}
	if ValidateNormID("NRM-123456") == "" {
		t.Error("long norm id should fail")
	}
	if msg := ValidateTeamMemberID("A12345"); msg != "" {
		t.Errorf("valid team member id rejected: %s", msg)
	}
	if ValidateTeamMemberID("123456") == "" {
		t.Error("team member id without letter should fail")
	}
	if msg := ValidateAgencyCode("123456", false); msg != "" {
		t.Errorf("valid agency code rejected: %s", msg)
	}
	if ValidateAgencyCode("12345", false) == "" {
		t.Error("short agency code should fail")
	}
}

func TestValidateClientIDPerTipo(t *testing.T) {
	cases := []struct {
		tipo, id string
		valid    bool
	}{
		{"DNI", "12345678", true},
		{"DNI", "1234567", false},
		{"RUC", "12345678901", true},
		{"RUC", "123", false},
		{"Pasaporte", "AB12345678", true},
		{"Pasaporte", "AB1", false},
		{"Carné de extranjería", "CE123456789", true},
		{"Otro", "abcd", true},
		{"Otro", "ab", false},
		{"DNI", "", false},
	}
	for _, tc := range cases {
		msg := ValidateClientID(tc.tipo, tc.id)
		if tc.valid && msg != "" {
			t.Errorf("ValidateClientID(%q, %q) rejected: %s", tc.tipo, tc.id, msg)
		}
		if !tc.valid && msg == "" {
			t.Errorf("ValidateClientID(%q, %q) should fail", tc.tipo, tc.id)
		}
	}
}

func TestNormalizeWithoutAccents(t *testing.T) {
	if got := NormalizeWithoutAccents("división comercial"); got != "division comercial" {
		t.Errorf("NormalizeWithoutAccents = %q", got)
	}
	if got := NormalizeWithoutAccents("ÁÉÍÓÚñ"); got != "AEIOUn" {
		t.Errorf("NormalizeWithoutAccents = %q", got)
	}
}

func TestSanitizeRichText(t *testing.T) {
	got := SanitizeRichText("uno\r\ndos\rtres\x00\x1b", 0)
	if got != "uno\ndos\ntres" {
		t.Errorf("SanitizeRichText = %q", got)
	}
	if got := SanitizeRichText("tab\tok", 0); got != "tab\tok" {
		t.Errorf("tab should survive, got %q", got)
	}
	long := strings.Repeat("á", 10)
	if got := SanitizeRichText(long, 4); len([]rune(got)) != 4 {
		t.Errorf("maxChars should cut by runes, got %d runes", len([]rune(got)))
	}
}
