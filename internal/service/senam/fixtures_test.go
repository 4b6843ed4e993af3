package senam

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// newRecord builds a record with yearly totals and no monthly detail.
func newRecord(id, nama string, tahunan map[string]int) senam.EmployeeRecord {
	total := 0
	for _, v := range tahunan {
		total += v
	}
	return senam.EmployeeRecord{
		ID:       id,
		Nama:     nama,
		NIK:      "NIK-" + id,
		Tahunan:  tahunan,
		Bulanan:  map[string]map[string]senam.MonthRecord{},
		TotalAll: total,
	}
}

// withMonths adds one month record per key, grouped by year.
func withMonths(r senam.EmployeeRecord, months map[string]int) senam.EmployeeRecord {
	for key, v := range months {
		year := key[:4]
		if r.Bulanan[year] == nil {
			r.Bulanan[year] = map[string]senam.MonthRecord{}
		}
		status := "Hadir"
		if v == 0 {
			status = senam.StatusAbsent
		}
		r.Bulanan[year][key] = senam.MonthRecord{Nama: monthName(key), Value: v, Status: status}
	}
	return r
}

// monthSpan fills every month from start through end of the given years with
// "no data" records.
func monthSpan(r senam.EmployeeRecord, fromYear, toYear int) senam.EmployeeRecord {
	for y := fromYear; y <= toYear; y++ {
		year := fmt.Sprintf("%d", y)
		if r.Bulanan[year] == nil {
			r.Bulanan[year] = map[string]senam.MonthRecord{}
		}
		for m := 1; m <= 12; m++ {
			key := fmt.Sprintf("%d-%02d", y, m)
			r.Bulanan[year][key] = senam.MonthRecord{Nama: senam.MonthNames[m-1], Status: senam.StatusNoData}
		}
	}
	return r
}

func monthName(key string) string {
	m, _ := strconv.Atoi(key[5:])
	return senam.MonthNames[m-1]
}

func ids(records []senam.EmployeeRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
