package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/subdu/internal/subdu"
)

// FormatSize renders bytes with 1024-based thresholds: plain bytes below 1 KB,
// otherwise KB, MB or GB with two decimals.
func FormatSize(bytes int64) string {
	switch {
	case bytes < humanize.KiByte:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < humanize.MiByte:
		return fmt.Sprintf("%.2f KB", float64(bytes)/humanize.KiByte)
	case bytes < humanize.GiByte:
		return fmt.Sprintf("%.2f MB", float64(bytes)/humanize.MiByte)
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/humanize.GiByte)
	}
}

// PrintResult writes one result line.
func PrintResult(writer io.Writer, result subdu.Result) error {
	_, err := fmt.Fprintf(writer, "Total size of '%s': %s | %d bytes\n",
		result.Path, FormatSize(result.Bytes), result.Bytes)

	return err
}
