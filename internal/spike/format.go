package spike

import "fmt"

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// FormatBytes renders a byte count the way alerts display it: two decimals
// for GB, one for MB, none for KB. Binary divisors with decimal unit labels,
// matching the app's display convention.
func FormatBytes(bytes int64) string {
	switch {
	case bytes >= gib:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gib))
	case bytes >= mib:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mib))
	case bytes >= kib:
		return fmt.Sprintf("%.0f KB", float64(bytes)/float64(kib))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
