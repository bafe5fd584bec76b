package labeling

import "testing"

func TestClassifyDefaultRules(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name   string
		file   string
		want   Label
		wantOK bool
	}{
		{name: "open example", file: "s0016_00083_1_0_0_0_1_01.png", want: Open, wantOK: true},
		{name: "closed example", file: "s0001_00001_0_1_1_1_1_02.png", want: Closed, wantOK: true},
		{name: "nested path", file: "/tmp/x/s0001/s0001_00001_0_1_1_1_1_02.png", want: Closed, wantOK: true},
		{name: "exactly seven segments", file: "a_b_c_d_e_0_g.png", want: Open, wantOK: true},
		{name: "six segments", file: "a_b_c_d_e_1.png"},
		{name: "token neither 0 nor 1", file: "s0001_00001_0_1_1_2_1_02.png"},
		{name: "empty token", file: "s0001_00001_0_1_1__1_02.png"},
		{name: "no underscores", file: "image.png"},
		{name: "underscore in directory only", file: "/a_b_c_d_e_0_g/image.png"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := rules.Classify(tc.file)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("Classify(%q) = (%q, %v), want (%q, %v)", tc.file, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestClassifyCustomRulesComparesBareToken(t *testing.T) {
	rules := Rules{MinSegments: 3, TokenIndex: 2, ClosedToken: "c", OpenToken: "o"}
	if got, ok := rules.Classify("x_y_c.png"); !ok || got != Closed {
		t.Fatalf("expected closed from trailing token, got (%q, %v)", got, ok)
	}
	if got, ok := rules.Classify("x_y_o.jpeg"); !ok || got != Open {
		t.Fatalf("expected open from trailing token, got (%q, %v)", got, ok)
	}
}

func TestParseLabel(t *testing.T) {
	for _, value := range []string{"open", " Open ", "CLOSED"} {
		if _, err := ParseLabel(value); err != nil {
			t.Fatalf("ParseLabel(%q): %v", value, err)
		}
	}
	if _, err := ParseLabel("squint"); err == nil {
		t.Fatal("expected error for unknown label")
	}
}
