package core

import (
	"errors"
	"math"
	"testing"
)

func TestParseUserAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"12.5", 12.5, true},
		{" 2.50 ", 2.5, true},
		{"-3", -3, true},
		{"0", 0, true},
		{"1e3", 1000, true},
		{"$12", 0, false},
		{"1,200", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseUserAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
			}
		}
	}
}

func TestRenderAmount(t *testing.T) {
	cases := []struct {
		amount float64
		symbol string
		want   string
	}{
		{12.5, "$", "$12.50"},
		{0, "$", "$0.00"},
		{-3, "€", "€-3.00"},
		{1234.567, "£", "£1234.57"},
		{7, "", "7.00"},
		{0.1 + 0.2, "$", "$0.30"},
		{2.675, "$", "$2.67"},
		{0.125, "$", "$0.12"},
		{1.005, "$", "$1.00"},
		{-0.001, "$", "$-0.00"},
	}
	for _, tc := range cases {
		if got := RenderAmount(tc.amount, tc.symbol); got != tc.want {
			t.Errorf("RenderAmount(%v, %q) = %q, want %q", tc.amount, tc.symbol, got, tc.want)
		}
	}
}

func TestRenderAmountNonFinite(t *testing.T) {
	if got := RenderAmount(math.Inf(1), "$"); got != "$+Inf" {
		t.Fatalf("unexpected rendering of +Inf: %q", got)
	}
}
