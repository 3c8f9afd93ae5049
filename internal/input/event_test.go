package input

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{name: "w", want: KeyW},
		{name: " Space ", want: KeySpace},
		{name: "SHIFT", want: KeyShiftLeft},
		{name: "escape", want: KeyEscape},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.name)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("ParseKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if _, err := ParseKey("q"); err == nil {
		t.Fatal("expected unknown key to fail")
	}
}

func TestKeyStringRoundTrip(t *testing.T) {
	for k := range keyNames {
		got, err := ParseKey(k.String())
		if err != nil || got != k {
			t.Fatalf("key %v did not round trip: %v %v", k, got, err)
		}
	}
	if KeyUnknown.String() != "unknown" {
		t.Fatal("unknown key should print as unknown")
	}
}
