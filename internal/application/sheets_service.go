package application

import (
	"context"
	"fmt"
	"sync"
	"verifybot/pkg/sheets"
)

type SheetsService interface {
	EnsureSheetExists(ctx context.Context) (string, error)
	ReplaceValues(ctx context.Context, data [][]interface{}) error
}

// SheetsServiceImpl keeps one spreadsheet for the bot, creating it on first use
// unless an id was configured.
type SheetsServiceImpl struct {
	client     sheets.Client
	ownerEmail string

	mu             sync.Mutex
	spreadsheetID  string
	spreadsheetURL string
}

func NewSheetsServiceImpl(client sheets.Client, spreadsheetID, ownerEmail string) *SheetsServiceImpl {
	s := &SheetsServiceImpl{
		client:     client,
		ownerEmail: ownerEmail,
	}
	if spreadsheetID != "" {
		s.spreadsheetID = spreadsheetID
		s.spreadsheetURL = spreadsheetURL(spreadsheetID)
	}
	return s
}

func (s *SheetsServiceImpl) EnsureSheetExists(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spreadsheetID != "" {
		return s.spreadsheetURL, nil
	}

	id, url, err := s.client.CreateSpreadsheet(ctx, defaultSheetTitle)
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	if s.ownerEmail != "" {
		if err := s.client.AddPermission(ctx, id, s.ownerEmail, "writer"); err != nil {
			return "", fmt.Errorf("failed to add owner permission: %w", err)
		}
	}

	s.spreadsheetID = id
	s.spreadsheetURL = url
	return url, nil
}

func (s *SheetsServiceImpl) ReplaceValues(ctx context.Context, data [][]interface{}) error {
	s.mu.Lock()
	id := s.spreadsheetID
	s.mu.Unlock()

	if id == "" {
		return fmt.Errorf("spreadsheet not initialized, call EnsureSheetExists first")
	}

	if err := s.client.ClearRange(ctx, id, defaultClearRange); err != nil {
		return fmt.Errorf("failed to clear spreadsheet: %w", err)
	}

	if err := s.client.UpdateValues(ctx, id, defaultStartCell, data); err != nil {
		return fmt.Errorf("failed to update spreadsheet: %w", err)
	}

	return nil
}

func spreadsheetURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", id)
}
