package spike

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "bytes", bytes: 512, want: "512 B"},
		{name: "kilobytes", bytes: 2048, want: "2 KB"},
		{name: "megabytes", bytes: 100 * 1024 * 1024, want: "100.0 MB"},
		{name: "fractional megabytes", bytes: 150*1024*1024 + 512*1024, want: "150.5 MB"},
		{name: "gigabytes", bytes: 1024 * 1024 * 1024, want: "1.00 GB"},
		{name: "fractional gigabytes", bytes: 1200000000, want: "1.12 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
