package senam

import (
	"sort"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

const rankingSize = 5

var rankBadges = [rankingSize]string{"🥇", "🥈", "🥉", "4️⃣", "5️⃣"}

// BuildRanking lists the top five records by scope value. Ties keep their
// relative order from records.
func BuildRanking(records []senam.EmployeeRecord, year string, dr senam.DateRange) senam.Ranking {
	ranking := senam.Ranking{Subtitle: rankingSubtitle(year, dr), Items: []senam.RankingItem{}}
	if len(records) == 0 {
		ranking.EmptyMessage = "Tidak ada data"
		return ranking
	}

	type scored struct {
		record senam.EmployeeRecord
		value  int
	}
	candidates := make([]scored, len(records))
	for i, r := range records {
		candidates[i] = scored{record: r, value: ScopeValue(r, year, dr)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].value > candidates[j].value
	})

	for i := 0; i < len(candidates) && i < rankingSize; i++ {
		c := candidates[i]
		ranking.Items = append(ranking.Items, senam.RankingItem{
			Rank:    i + 1,
			Badge:   rankBadges[i],
			ID:      c.record.ID,
			Nama:    c.record.Nama,
			Jabatan: orDash(c.record.Jabatan),
			Value:   c.value,
		})
	}
	return ranking
}

func rankingSubtitle(year string, dr senam.DateRange) string {
	switch {
	case year != "" && year != senam.AllValue:
		return "Tahun " + year
	case dr.IsSet():
		return DateRangeText(dr)
	default:
		return "Semua Tahun"
	}
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
