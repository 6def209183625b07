package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Deep Learning", "deeplearning"},
		{"Deep   Learning.", "deeplearning"},
		{"A Theory of Justice: Revised Edition", "atheoryofjusticerevisededition"},
		{"C++ for Everyone!", "cforeveryone"},
		{"Études de cas", "étudesdecas"},
		{"2001: A Space Odyssey", "2001aspaceodyssey"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Deep Learning.",
		"Études de cas",
		"On the Electrodynamics of Moving Bodies",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}
