package repository

import (
	"database/sql"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"gorm.io/gorm"
)

// Sibling ordering primitive. Sections (per course) and lessons (per section)
// keep a zero-based contiguous order_index among rows sharing a parent. All
// three helpers run against the *gorm.DB they are handed, so callers decide
// the transaction boundary; ApplyExplicitOrder in particular must run inside
// a transaction because a half-applied reorder leaves the indices broken.

// NextOrderIndex returns the index a newly appended child should get:
// max(order_index)+1 among the parent's children, or 0 when there are none.
// Read-only; the caller persists the child.
func NextOrderIndex(db *gorm.DB, entity interface{}, parentColumn, parentID string) (int, error) {
	var max sql.NullInt64
	err := db.Model(entity).
		Where(parentColumn+" = ?", parentID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// CompactAfterRemoval shifts every sibling above the removed index down by
// one. Must run after the removed row's delete. Re-running it against an
// already-compacted parent matches zero rows, so a retry is a no-op.
func CompactAfterRemoval(db *gorm.DB, entity interface{}, parentColumn, parentID string, removedIndex int) error {
	return db.Model(entity).
		Where(parentColumn+" = ? AND order_index > ?", parentID, removedIndex).
		UpdateColumn("order_index", gorm.Expr("order_index - 1")).Error
}

// ApplyExplicitOrder rewrites order_index so each child sits at its position
// in orderedIDs. The sequence must be exactly the parent's current child set;
// a missing, foreign, or duplicated id rejects the whole batch before any
// write happens.
func ApplyExplicitOrder(db *gorm.DB, entity interface{}, parentColumn, parentID string, orderedIDs []string) error {
	var current []string
	if err := db.Model(entity).
		Where(parentColumn+" = ?", parentID).
		Pluck("id", &current).Error; err != nil {
		return err
	}

	if len(current) != len(orderedIDs) {
		return util.ErrInvalidReorderSet
	}
	existing := make(map[string]struct{}, len(current))
	for _, id := range current {
		existing[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := existing[id]; !ok {
			return util.ErrInvalidReorderSet
		}
		if _, dup := seen[id]; dup {
			return util.ErrInvalidReorderSet
		}
		seen[id] = struct{}{}
	}

	for position, id := range orderedIDs {
		if err := db.Model(entity).
			Where("id = ?", id).
			UpdateColumn("order_index", position).Error; err != nil {
			return err
		}
	}
	return nil
}
