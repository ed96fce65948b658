// file: internals/features/pendataan/service/academic_year.go
package service

import (
	"fmt"
	"strconv"
	"time"
)

// Dua format tahun ajaran dipakai berdampingan:
//   - rentang "2026/2027" → sarana, prasarana, kebutuhan prioritas
//   - tahun tunggal "2026" → jumlah guru, rombongan belajar
// Jangan disatukan: baris lama tersimpan dengan format masing-masing.

func AcademicYearRange(t time.Time) string {
	y := t.Year()
	return fmt.Sprintf("%d/%d", y, y+1)
}

func AcademicYearBare(t time.Time) string {
	return strconv.Itoa(t.Year())
}
