package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verifybot/internal/application"
)

type fakeSheetsClient struct {
	created     int
	permissions []string
	cleared     string
	updated     [][]interface{}
	createErr   error
}

func (c *fakeSheetsClient) CreateSpreadsheet(_ context.Context, title string) (string, string, error) {
	if c.createErr != nil {
		return "", "", c.createErr
	}
	c.created++
	return "sheet-1", "https://docs.google.com/spreadsheets/d/sheet-1", nil
}

func (c *fakeSheetsClient) AddPermission(_ context.Context, _, email, role string) error {
	c.permissions = append(c.permissions, email+":"+role)
	return nil
}

func (c *fakeSheetsClient) ClearRange(_ context.Context, _, rangeStr string) error {
	c.cleared = rangeStr
	return nil
}

func (c *fakeSheetsClient) UpdateValues(_ context.Context, _, _ string, values [][]interface{}) error {
	c.updated = values
	return nil
}

func TestSheetsServiceCreatesOnce(t *testing.T) {
	ctx := context.Background()
	client := &fakeSheetsClient{}
	svc := application.NewSheetsServiceImpl(client, "", "owner@example.com")

	url, err := svc.EnsureSheetExists(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-1", url)

	_, err = svc.EnsureSheetExists(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, client.created)
	assert.Equal(t, []string{"owner@example.com:writer"}, client.permissions)

	rows := [][]interface{}{{"a", "b"}}
	require.NoError(t, svc.ReplaceValues(ctx, rows))
	assert.Equal(t, "A1:Z5000", client.cleared)
	assert.Equal(t, rows, client.updated)
}

func TestSheetsServiceConfiguredID(t *testing.T) {
	client := &fakeSheetsClient{}
	svc := application.NewSheetsServiceImpl(client, "preset", "")

	url, err := svc.EnsureSheetExists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/preset", url)
	assert.Zero(t, client.created)
}

func TestSheetsServiceErrors(t *testing.T) {
	ctx := context.Background()
	client := &fakeSheetsClient{createErr: errors.New("forbidden")}
	svc := application.NewSheetsServiceImpl(client, "", "")

	_, err := svc.EnsureSheetExists(ctx)
	assert.ErrorIs(t, err, client.createErr)

	assert.Error(t, svc.ReplaceValues(ctx, nil))
}
