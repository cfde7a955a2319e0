package pipeline

import (
	"fmt"
	"path/filepath"

	"datesift/internal/classify"
	"datesift/internal/place"
)

// buildPlans turns classified month groups into ordered month plans. Within a
// month, entries keep their (day, modification time, path) order and each
// file's starting sequence is its 1-based position within its day, so a clean
// destination reproduces the same names on every run.
func buildPlans(groups map[classify.MonthKey][]classify.Record, destRoot string) ([]place.MonthPlan, int64) {
	var totalBytes int64
	keys := classify.SortedKeys(groups)
	plans := make([]place.MonthPlan, 0, len(keys))

	for _, key := range keys {
		dir := filepath.Join(destRoot, fmt.Sprintf("%04d", key.Year), fmt.Sprintf("%02d", int(key.Month)))
		plan := place.MonthPlan{Year: key.Year, Month: key.Month, Dir: dir}

		days, order := classify.ByDay(groups[key])
		for _, day := range order {
			for i, record := range days[day] {
				plan.Entries = append(plan.Entries, place.Entry{
					Source:   record.Path,
					Date:     record.ModTime,
					Ext:      record.Ext,
					Label:    record.Label,
					StartSeq: i + 1,
				})
				totalBytes += record.Size
			}
		}
		plans = append(plans, plan)
	}
	return plans, totalBytes
}
