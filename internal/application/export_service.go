package application

import (
	"context"
	"fmt"
	"verifybot/internal/models"
	"verifybot/internal/repository"

	"github.com/xuri/excelize/v2"
)

var (
	bindingHeaders   = []string{"Discord ID", "Discord Name", "PlayFab ID", "Player Name", "Clan", "Verified At", "Updated At"}
	allowListHeaders = []string{"#", "PlayFab ID", "Player Name", "Added At"}
)

type ExportServiceImpl struct {
	bindings  repository.Binding
	allowList repository.AllowList
	guard     AuthorizationGuard
	sheets    SheetsService
	logger    Logger
}

func NewExportServiceImpl(bindings repository.Binding, allowList repository.AllowList, guard AuthorizationGuard, sheets SheetsService, logger Logger) *ExportServiceImpl {
	return &ExportServiceImpl{
		bindings:  bindings,
		allowList: allowList,
		guard:     guard,
		sheets:    sheets,
		logger:    logger,
	}
}

func (s *ExportServiceImpl) ExcelReport(ctx context.Context, adminActorID string) ([]byte, Outcome, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "export") {
		return nil, OutcomeForbidden, nil
	}

	bindings, entries, err := s.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(excelBindingsSheet); err != nil {
		return nil, 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(excelAllowListSheet); err != nil {
		return nil, 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	if err := writeRows(f, excelBindingsSheet, bindingRows(bindings, entries)); err != nil {
		return nil, 0, err
	}
	if err := writeRows(f, excelAllowListSheet, allowListRows(entries)); err != nil {
		return nil, 0, err
	}

	f.SetColWidth(excelBindingsSheet, "A", "B", 24)
	f.SetColWidth(excelBindingsSheet, "C", "D", 22)
	f.SetColWidth(excelBindingsSheet, "E", "E", 8)
	f.SetColWidth(excelBindingsSheet, "F", "G", 20)
	f.SetColWidth(excelAllowListSheet, "A", "A", 6)
	f.SetColWidth(excelAllowListSheet, "B", "D", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to write report: %w", err)
	}

	s.logger.Info("admin %s exported %d bindings and %d allow list entries", adminActorID, len(bindings), len(entries))
	return buf.Bytes(), OutcomeOK, nil
}

func (s *ExportServiceImpl) SyncSheet(ctx context.Context, adminActorID string) (string, Outcome, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "sync sheet") {
		return "", OutcomeForbidden, nil
	}
	if s.sheets == nil {
		return "", 0, fmt.Errorf("google sheets service is not configured")
	}

	bindings, entries, err := s.load(ctx)
	if err != nil {
		return "", 0, err
	}

	url, err := s.sheets.EnsureSheetExists(ctx)
	if err != nil {
		return "", 0, err
	}
	if err := s.sheets.ReplaceValues(ctx, toInterfaces(bindingRows(bindings, entries))); err != nil {
		return "", 0, err
	}

	s.logger.Info("admin %s synced %d bindings to google sheet", adminActorID, len(bindings))
	return url, OutcomeOK, nil
}

func (s *ExportServiceImpl) load(ctx context.Context) ([]models.IdentityBinding, []models.AllowListEntry, error) {
	bindings, err := s.bindings.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list bindings: %w", err)
	}
	entries, err := s.allowList.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list allow list: %w", err)
	}
	return bindings, entries, nil
}

func bindingRows(bindings []models.IdentityBinding, entries []models.AllowListEntry) [][]string {
	allowed := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		allowed[e.ExternalID] = struct{}{}
	}

	rows := make([][]string, 0, len(bindings)+1)
	rows = append(rows, bindingHeaders)
	for _, b := range bindings {
		clan := "no"
		if _, ok := allowed[b.ExternalID]; ok {
			clan = "yes"
		}
		rows = append(rows, []string{
			b.RequesterID,
			b.RequesterLabel,
			b.ExternalID,
			b.ExternalLabel,
			clan,
			b.CreatedAt.Format(excelTimestampLayout),
			b.UpdatedAt.Format(excelTimestampLayout),
		})
	}
	return rows
}

func allowListRows(entries []models.AllowListEntry) [][]string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, allowListHeaders)
	for i, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.ExternalID,
			e.ExternalLabel,
			e.CreatedAt.Format(excelTimestampLayout),
		})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func toInterfaces(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		out[i] = values
	}
	return out
}
