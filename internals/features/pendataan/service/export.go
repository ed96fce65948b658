// file: internals/features/pendataan/service/export.go
package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sarpras_backend/internals/features/pendataan/dto"
	model "sarpras_backend/internals/features/pendataan/model"
)

const (
	SheetSchools    = "Rekap Sekolah"
	SheetFacilities = "Kondisi Ruang"

	exportPageSize = 200
	exportMaxRows  = 10000
)

var schoolSheetHeader = []interface{}{
	"No", "NPSN", "Nama Sekolah", "Kepala Sekolah", "Kecamatan", "Status",
	"Total Guru", "Total Siswa", "Dikirim", "Diverifikasi", "Catatan Verifikasi",
}

var facilitySheetHeader = []interface{}{"Jenis Ruang", "Total", "Baik", "Rusak"}

// ExportSchools membuat workbook .xlsx rekap sekolah sesuai filter list (tanpa paging).
func (s *Service) ExportSchools(ctx context.Context, adminID string, q dto.ListSchoolQuery) ([]byte, error) {
	if _, err := parseActorID(adminID); err != nil {
		return nil, err
	}
	q.Normalize()
	q.Limit = exportPageSize
	q.Offset = 0

	var rows []dto.SchoolResponse
	for len(rows) < exportMaxRows {
		page, total, err := s.ListSchools(ctx, adminID, q)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page...)
		if len(page) < q.Limit || int64(len(rows)) >= total {
			break
		}
		q.Offset += q.Limit
	}

	facilities, err := s.repo.SumFacilityConditions(ctx, AcademicYearRange(s.now()))
	if err != nil {
		return nil, s.persistence("export_facility_conditions", err)
	}

	buf, err := buildWorkbook(rows, facilities)
	if err != nil {
		s.log.Error().Err(err).Msg("gagal membuat file excel")
		return nil, &PersistenceFailure{Op: "export_workbook", Err: err}
	}
	return buf, nil
}

func buildWorkbook(schools []dto.SchoolResponse, facilities []model.FacilityConditionTotal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSchools); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetFacilities); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}

	// Sheet 1: sekolah
	if err := f.SetSheetRow(SheetSchools, "A1", &schoolSheetHeader); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(schoolSheetHeader), 1)
	if err := f.SetCellStyle(SheetSchools, "A1", lastCol, headerStyle); err != nil {
		return nil, err
	}
	for i, sc := range schools {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1,
			sc.NPSN,
			sc.SchoolName,
			sc.HeadmasterName,
			sc.SubDistrict,
			string(sc.Status),
			sc.TotalTeachers,
			sc.TotalStudents,
			derefOrDash(sc.SubmittedAt),
			derefOrDash(sc.ReviewedAt),
			derefOrDash(sc.ReviewNotes),
		}
		if err := f.SetSheetRow(SheetSchools, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(SheetSchools, "B", "B", 12)
	_ = f.SetColWidth(SheetSchools, "C", "D", 32)
	_ = f.SetColWidth(SheetSchools, "E", "F", 16)
	_ = f.SetColWidth(SheetSchools, "I", "K", 24)

	// Sheet 2: kondisi ruang (agregat seluruh sekolah)
	if err := f.SetSheetRow(SheetFacilities, "A1", &facilitySheetHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetFacilities, "A1", "D1", headerStyle); err != nil {
		return nil, err
	}
	for i, fc := range facilities {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{string(fc.Type), fc.Total, fc.Good, fc.Damaged}
		if err := f.SetSheetRow(SheetFacilities, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(SheetFacilities, "A", "A", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func derefOrDash(p *string) string {
	if p == nil || *p == "" {
		return "-"
	}
	return *p
}
