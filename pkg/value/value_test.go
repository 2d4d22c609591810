package value

import (
	"math"
	"strconv"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		x    float64
		prec int
		want string
	}{
		{1.0, 2, "1"},
		{1.2, 2, "1.2"},
		{1.23, 2, "1.23"},
		{1.234, 2, "1.23"},
		{1.235, 2, "1.24"},
		{1.23456789, 8, "1.23456789"},
		{1.234567891, 8, "1.23456789"},
		{1.234567899, 8, "1.2345679"},
		{-1.0, 2, "-1"},
		{-1.2, 2, "-1.2"},
		{-1.235, 2, "-1.24"},
		{0.0, 2, "0"},
		{math.Copysign(0, -1), 2, "0"},
		{123.0, 0, "123"},
		{123.456, 0, "123"},
		{123.567, 0, "124"},
		{0.9, 0, "1"},
		{1.23000000, 8, "1.23"},
		{1.000000001, 8, "1"},
		{1.999999999, 8, "2"},
		{0.000000001, 8, "0"},
		{-0.000000001, 8, "0"},
		{1000, 8, "1000"},
	}

	for _, tt := range tests {
		got := FormatFloat(tt.x, tt.prec)
		if got != tt.want {
			t.Errorf("FormatFloat(%v, %d) = %q, want %q", tt.x, tt.prec, got, tt.want)
		}
	}
}

func TestFormatNumberRoundTrip(t *testing.T) {
	inputs := []float64{0, 1, -1, 0.1, 1.0 / 3, -2.5e-9, 12345.678901234, math.Pi, -math.E, 1e12}
	for _, x := range inputs {
		first := FormatNumber(x)
		parsed, err := strconv.ParseFloat(first, 64)
		if err != nil {
			t.Fatalf("FormatNumber(%v) = %q does not parse: %v", x, first, err)
		}
		if second := FormatNumber(parsed); second != first {
			t.Errorf("round trip of %v: %q then %q", x, first, second)
		}
	}
	if FormatNumber(math.Copysign(0, -1)) != FormatNumber(0) {
		t.Error("-0 and 0 format differently")
	}
}

func TestQuote(t *testing.T) {
	if got := String(`say "hi"`).SCAD(); got != `"say \"hi\""` {
		t.Errorf("got %s", got)
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"number", Number(2.50), "2.5"},
		{"int", Int(64), "64"},
		{"bool", Bool(true), "true"},
		{"ident", Ident("$preview"), "$preview"},
		{"vec2", V2(8, -4), "[8, -4]"},
		{"vec3", V3(0, 0.5, -0.025), "[0, 0.5, -0.025]"},
		{"vec4", Vec4{0.3, 0.5, 0.2, 1}, "[0.3, 0.5, 0.2, 1]"},
		{"list", List[Vec2]{V2(0, 0), V2(1, 2)}, "[[0, 0], [1, 2]]"},
		{"nested", List[List[Int]]{Indices([]int{0, 1, 2}), Indices([]int{2})}, "[[0, 1, 2], [2]]"},
		{"empty list", List[Number]{}, "[]"},
		{"deg", Deg(90), "90"},
		{"rad", Rad(math.Pi / 2), "90"},
		{"radius", Radius(3), "3"},
		{"rgb", RGB(0.3, 0.5, 0.2), "[0.3, 0.5, 0.2]"},
		{"rgba", RGBA(0.3, 0.5, 0.2, 1), "[0.3, 0.5, 0.2, 1]"},
		{"named", Named("#C0FFEE"), `"#C0FFEE"`},
		{
			"matrix3x4",
			Matrix3x4{{1, 0, 0, 10}, {0, 1, 0, 20}, {0, 0, 1, 30}},
			"[[1, 0, 0, 10], [0, 1, 0, 20], [0, 0, 1, 30]]",
		},
		{
			"matrix2x3",
			Matrix2x3{{1, 2, 3}, {4, 5, 6}},
			"[[1, 2, 0, 3], [4, 5, 0, 6], [0, 0, 1, 0]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.SCAD(); got != tt.want {
				t.Errorf("SCAD() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCall(t *testing.T) {
	if got := Call("square", Opt("size", Number(1)), Opt("center", Bool(true))); got != "square(size = 1, center = true)" {
		t.Errorf("got %q", got)
	}
	if got := Call("union"); got != "union()" {
		t.Errorf("got %q", got)
	}
	if got := Call("translate", Opt("", V2(8, -4))); got != "translate([8, -4])" {
		t.Errorf("got %q", got)
	}
}

func TestArgsOptional(t *testing.T) {
	fn := uint64(64)
	var fa *float64
	center := false

	var a Args
	a.Add(Radius(2).Key(), Radius(2)).
		AddNumber("$fa", fa).
		AddInt("$fn", &fn).
		AddBool("center", &center)

	if got := a.Call("circle"); got != "circle(r = 2, $fn = 64, center = false)" {
		t.Errorf("got %q", got)
	}
	if len(a.Options()) != 3 {
		t.Errorf("expected 3 options, got %d", len(a.Options()))
	}
}

func TestColorKey(t *testing.T) {
	if RGB(1, 0, 0).Key() != "c" {
		t.Error("vector color should use key c")
	}
	if Named("red").Key() != "" {
		t.Error("named color should be positional")
	}
	if Diameter(4).Key() != "d" || Radius(4).Key() != "r" {
		t.Error("round size keys")
	}
}

func TestAddStringAndPtr(t *testing.T) {
	var a Args
	a.AddString("font", "").AddString("halign", "center").AddNumber("size", Ptr(4.5))
	if got := a.Call("text"); got != `text(halign = "center", size = 4.5)` {
		t.Errorf("got %q", got)
	}
}
