package auth

import "testing"

func TestSignVerify(t *testing.T) {
	signed := Sign("123")

	value, err := Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if value != "123" {
		t.Errorf("expected value 123, got %q", value)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"no separator", "garbage"},
		{"bad signature", "MTIz|aW52YWxpZA=="},
		{"bad encoding", "%%%|%%%"},
		{"swapped value", Sign("123")[:1] + Sign("456")[1:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Verify(tt.value); err == nil {
				t.Error("expected verification to fail")
			}
		})
	}
}
