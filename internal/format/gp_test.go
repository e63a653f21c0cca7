package format

import "testing"

func TestFormatGP(t *testing.T) {
	tests := []struct {
		name string
		want string
		v    int64
	}{
		{name: "zero", v: 0, want: "0"},
		{name: "under a thousand", v: 950, want: "950"},
		{name: "thousands", v: 4500, want: "4.5k"},
		{name: "whole thousands drop the decimal", v: 5000, want: "5k"},
		{name: "millions", v: 1_500_000, want: "1.5m"},
		{name: "billions", v: 2_100_000_000, want: "2.1b"},
		{name: "negative thousands", v: -4500, want: "-4.5k"},
		{name: "negative under a thousand", v: -42, want: "-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatGP(tt.v); got != tt.want {
				t.Errorf("FormatGP(%d) = %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormatGPSigned(t *testing.T) {
	tests := []struct {
		name string
		want string
		v    int64
	}{
		{name: "profit gets a plus", v: 4500, want: "+4.5k"},
		{name: "zero gets a plus", v: 0, want: "+0"},
		{name: "loss keeps its minus", v: -1_200_000, want: "-1.2m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatGPSigned(tt.v); got != tt.want {
				t.Errorf("FormatGPSigned(%d) = %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormatROI(t *testing.T) {
	tests := []struct {
		name string
		want string
		roi  float64
	}{
		{name: "two decimals", roi: 45.0, want: "45.00%"},
		{name: "rounds down", roi: 33.3333, want: "33.33%"},
		{name: "rounds up", roi: 66.666, want: "66.67%"},
		{name: "negative", roi: -10.0, want: "-10.00%"},
		{name: "zero", roi: 0, want: "0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatROI(tt.roi); got != tt.want {
				t.Errorf("FormatROI(%v) = %s, want %s", tt.roi, got, tt.want)
			}
		})
	}
}

func TestFormatCommas(t *testing.T) {
	tests := []struct {
		name string
		want string
		v    int64
	}{
		{name: "short", v: 950, want: "950"},
		{name: "thousands", v: 4500, want: "4,500"},
		{name: "millions", v: 1_234_567, want: "1,234,567"},
		{name: "negative", v: -1_234_567, want: "-1,234,567"},
		{name: "zero", v: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCommas(tt.v); got != tt.want {
				t.Errorf("FormatCommas(%d) = %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}
