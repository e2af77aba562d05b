package overwatch

import "testing"

func TestToCanonical(t *testing.T) {
	cases := []struct {
		display string
		want    string
	}{
		{"Tester#1234", "Tester-1234"},
		{"abc#1", "abc-1"},
		{"TwelveCharss#42", "TwelveCharss-42"},
	}
	for _, c := range cases {
		got, err := ToCanonical(c.display)
		if err != nil {
			t.Fatalf("ToCanonical(%q): %v", c.display, err)
		}
		if got != c.want {
			t.Fatalf("ToCanonical(%q) = %q, want %q", c.display, got, c.want)
		}
	}
}

func TestToCanonicalRejects(t *testing.T) {
	bad := []string{
		"",
		"Tester",
		"Tester#",
		"#1234",
		"ab#1234",         // name too short
		"ThirteenCharsets#1", // name too long
		"1Tester#1234",    // digit-first
		"Tes ter#1234",    // space
		"Tes.ter#1234",    // punctuation
		"Tester#12a4",     // non-numeric discriminator
		"Tes#ter#1234",    // extra separator
	}
	for _, display := range bad {
		if _, err := ToCanonical(display); err == nil {
			t.Fatalf("ToCanonical(%q) accepted, want error", display)
		}
	}
}

func TestToDisplayRoundTrip(t *testing.T) {
	canonical, err := ToCanonical("Tester#1234")
	if err != nil {
		t.Fatal(err)
	}
	if got := ToDisplay(canonical); got != "Tester#1234" {
		t.Fatalf("round trip = %q, want %q", got, "Tester#1234")
	}
}

func TestToDisplayReplacesLastSeparator(t *testing.T) {
	// A dash inside the name must survive the conversion.
	if got := ToDisplay("Dash-Name-1234"); got != "Dash-Name#1234" {
		t.Fatalf("ToDisplay = %q, want %q", got, "Dash-Name#1234")
	}
	if got := ToDisplay("nodash"); got != "nodash" {
		t.Fatalf("ToDisplay without separator = %q, want passthrough", got)
	}
}

func TestMentionID(t *testing.T) {
	if id, ok := MentionID("<@123456>"); !ok || id != 123456 {
		t.Fatalf("MentionID(<@123456>) = %d, %v", id, ok)
	}
	if id, ok := MentionID("<@!98765>"); !ok || id != 98765 {
		t.Fatalf("MentionID(<@!98765>) = %d, %v", id, ok)
	}
	for _, token := range []string{"", "Tester#1234", "<@abc>", "<@123", "@123456"} {
		if _, ok := MentionID(token); ok {
			t.Fatalf("MentionID(%q) matched, want no match", token)
		}
	}
}
