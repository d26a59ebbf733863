// Package maintenance provides database cleanup procedures.
package maintenance

import (
	"fmt"
	"log"
	"time"

	"inkpress/internal/database"
)

// SweepOrphanedComments removes comments left behind by post deletion,
// which intentionally does not cascade. With dryRun set it only reports
// what would be removed.
func SweepOrphanedComments(db *database.DB, dryRun bool) error {
	log.Println("[CLEANUP] Sweeping orphaned comments...")
	startTime := time.Now()

	count, err := db.CountOrphanedComments()
	if err != nil {
		return fmt.Errorf("failed to count orphaned comments: %w", err)
	}
	if count == 0 {
		log.Println("[CLEANUP] No orphaned comments found")
		return nil
	}

	if dryRun {
		log.Printf("[CLEANUP] DRY RUN - would delete %d orphaned comments", count)
		return nil
	}

	deleted, err := db.DeleteOrphanedComments()
	if err != nil {
		return fmt.Errorf("failed to delete orphaned comments: %w", err)
	}

	log.Printf("[CLEANUP] Deleted %d orphaned comments in %v", deleted, time.Since(startTime))
	return nil
}
