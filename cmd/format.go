package cmd

import (
	"fmt"

	"github.com/artor/studysearch/pkg/storage"
)

// formatNumber formats a number with K/M suffixes for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// formatStats formats database statistics for display
func formatStats(stats *storage.Stats) {
	fmt.Printf("📊 Content Statistics\n")
	fmt.Printf("═══════════════════════\n\n")

	fmt.Printf("Courses:    %s\n", formatNumber(int(stats.Courses)))
	fmt.Printf("Lessons:    %s\n", formatNumber(int(stats.Lessons)))
	fmt.Printf("Categories: %s\n", formatNumber(int(stats.Categories)))
	fmt.Printf("Users:      %s\n", formatNumber(int(stats.Users)))

	if stats.Courses == 0 && stats.Lessons == 0 {
		fmt.Printf("\nNo content yet. Run 'studysearch seed' to load demo fixtures.\n")
	}
}
