package zmx

import "testing"

func TestArgString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{1.0, "1.00000000000000000000E+00"},
		{-0.5, "-5.00000000000000000000E-01"},
		{float32(2), "2.00000000000000000000E+00"},
		{true, "1"},
		{false, "0"},
		{7, "7"},
		{"BK7", "BK7"},
	}
	for _, c := range cases {
		if got := argString(c.in); got != c.want {
			t.Errorf("argString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestArgListJoinsWithCommas(t *testing.T) {
	got := argList(3, 0, true)
	if want := "3,0,1"; got != want {
		t.Errorf("argList = %q, want %q", got, want)
	}
}

func TestSplitFieldsCountMismatch(t *testing.T) {
	if _, err := splitFields("GetSystem", "1,2,3", 9); err == nil {
		t.Fatal("expected error for short response")
	}
	fields, err := splitFields("GetSystem", "1,2,3", 3)
	if err != nil {
		t.Fatalf("splitFields: %v", err)
	}
	if fields[2] != "3" {
		t.Errorf("fields[2] = %q, want %q", fields[2], "3")
	}
}

func TestParseFloatListRejectsJunk(t *testing.T) {
	vals, err := parseFloatList("GetIndex", "1.5,2.5")
	if err != nil {
		t.Fatalf("parseFloatList: %v", err)
	}
	if vals[0] != 1.5 || vals[1] != 2.5 {
		t.Errorf("parseFloatList = %v", vals)
	}
	if _, err := parseFloatList("GetIndex", "1.5,x"); err == nil {
		t.Fatal("expected parse error")
	}
}
