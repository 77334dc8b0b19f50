package domain

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+7-913-123-45-67": "89131234567",
		"+79131234567":     "89131234567",
		"8-913-123-45-67":  "89131234567",
		"89131234567":      "89131234567",
	}
	for in, want := range tests {
		if got := NormalizePhone(in); got != want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLogin(t *testing.T) {
	if got := NormalizeLogin("ВасяPupkin"); got != "васяpupkin" {
		t.Fatalf("unexpected login %q", got)
	}
}

func TestNewClient(t *testing.T) {
	a := NewClient("anna", "hash", Person{FirstName: "Анна"}, "a@b.c", "Омск", "89131234567")

	if !a.IsClient() || a.IsAdmin() || a.Admin != nil {
		t.Fatalf("unexpected role data: %+v", a)
	}
	if a.Client.Deposit != 0 {
		t.Fatalf("deposit must start at zero")
	}
}
