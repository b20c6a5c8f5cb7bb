package integrity

import "sort"

// KeyedRow is a row identity paired with the value a uniqueness constraint
// will be declared over.
type KeyedRow struct {
	ID  uint
	Key string
}

// DuplicateIDs walks rows in ascending id order keeping the first occurrence
// of every key and returns the ids of all later duplicates. The result is
// what a deduplicate-then-constrain migration deletes (or clears) before the
// unique constraint can be added.
func DuplicateIDs(rows []KeyedRow) []uint {
	sorted := make([]KeyedRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	seen := make(map[string]struct{}, len(sorted))
	var dupes []uint
	for _, row := range sorted {
		if _, ok := seen[row.Key]; ok {
			dupes = append(dupes, row.ID)
			continue
		}
		seen[row.Key] = struct{}{}
	}
	return dupes
}

// DuplicateGroups returns, per duplicated key, every id that carries it in
// ascending order. Used by reporting; the first id of each group is the one
// a dedup migration keeps.
func DuplicateGroups(rows []KeyedRow) map[string][]uint {
	sorted := make([]KeyedRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byKey := make(map[string][]uint)
	for _, row := range sorted {
		byKey[row.Key] = append(byKey[row.Key], row.ID)
	}
	for key, ids := range byKey {
		if len(ids) < 2 {
			delete(byKey, key)
		}
	}
	return byKey
}
