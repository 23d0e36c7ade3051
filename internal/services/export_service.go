package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"contestbot/internal/config"
)

type ExportService struct {
	users     UserStore
	referrals ReferralStore
	stats     *StatsService
}

func NewExportService(users UserStore, referrals ReferralStore, stats *StatsService) *ExportService {
	return &ExportService{
		users:     users,
		referrals: referrals,
		stats:     stats,
	}
}

// BuildWorkbook assembles the admin export: the full participant roster,
// the last 30 days of daily stats, the top referrers and overall totals.
func (s *ExportService) BuildWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.users.ExportRows(ctx, config.EXPORT_MAX_ROWS)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const usersSheet = "Ishtirokchilar"
	f.SetSheetName("Sheet1", usersSheet)

	headers := []string{"№", "ID", "Ism", "Familiya", "Username", "Telefon", "Ball", "Takliflar", "Taklif qilgan", "Ro'yxatdan o'tgan", "Oxirgi faollik"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(usersSheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(usersSheet, fmt.Sprintf("A%d", r), row.Rank)
		f.SetCellValue(usersSheet, fmt.Sprintf("B%d", r), row.UserId)
		f.SetCellValue(usersSheet, fmt.Sprintf("C%d", r), row.FirstName.String)
		f.SetCellValue(usersSheet, fmt.Sprintf("D%d", r), row.LastName.String)
		f.SetCellValue(usersSheet, fmt.Sprintf("E%d", r), row.Username.String)
		f.SetCellValue(usersSheet, fmt.Sprintf("F%d", r), row.PhoneNumber.String)
		f.SetCellValue(usersSheet, fmt.Sprintf("G%d", r), row.Balance)
		f.SetCellValue(usersSheet, fmt.Sprintf("H%d", r), row.ReferralCount)
		f.SetCellValue(usersSheet, fmt.Sprintf("I%d", r), row.ReferrerName.String)
		f.SetCellValue(usersSheet, fmt.Sprintf("J%d", r), row.RegisteredAt.Format("2006-01-02 15:04"))
		f.SetCellValue(usersSheet, fmt.Sprintf("K%d", r), row.LastActiveAt.Format("2006-01-02 15:04"))
	}

	if err := s.addStatsSheet(ctx, f); err != nil {
		return nil, err
	}
	if err := s.addReferrersSheet(ctx, f); err != nil {
		return nil, err
	}
	if err := s.addSummarySheet(ctx, f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func (s *ExportService) addStatsSheet(ctx context.Context, f *excelize.File) error {
	const sheet = "Kunlik statistika"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	stats, err := s.stats.Growth(ctx, 30)
	if err != nil {
		return err
	}

	headers := []string{"Kun", "Yangi foydalanuvchilar", "Faol foydalanuvchilar", "Jami foydalanuvchilar"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, point := range stats {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), point.Day.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), point.NewUsers)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), point.ActiveUsers)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), point.CumulativeUsers)
	}
	return nil
}

func (s *ExportService) addReferrersSheet(ctx context.Context, f *excelize.File) error {
	const sheet = "Top taklifchilar"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	top, err := s.referrals.TopReferrers(ctx, config.TOP_RATING_COUNT)
	if err != nil {
		return err
	}

	headers := []string{"O'rin", "ID", "Ism", "Takliflar soni"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, ref := range top {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), ref.UserId)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), ref.DisplayName())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), ref.Referrals)
	}
	return nil
}

func (s *ExportService) addSummarySheet(ctx context.Context, f *excelize.File) error {
	const sheet = "Umumiy"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	allTime, err := s.stats.AllTime(ctx)
	if err != nil {
		return err
	}
	points, err := s.users.SumBalances(ctx)
	if err != nil {
		return err
	}

	lines := [][2]any{
		{"Yaratilgan", time.Now().Format("2006-01-02 15:04")},
		{"Jami foydalanuvchilar", allTime.TotalUsers},
		{"Bugun faol", allTime.ActiveToday},
		{"Haftada faol", allTime.ActiveWeek},
		{"Oyda faol", allTime.ActiveMonth},
		{"Jami takliflar", allTime.TotalReferrals},
		{"Jami xabarlar", allTime.TotalMessages},
		{"Tarqatilgan ballar", points},
	}
	for i, line := range lines {
		r := i + 1
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), line[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), line[1])
	}
	return nil
}
