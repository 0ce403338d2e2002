package mocks

import (
	"context"

	"delivery-reconciler/core/ledger"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of ledger.Client
type Client struct {
	mock.Mock
}

func (m *Client) FetchRows(ctx context.Context, tableID, columnName, value string) ([]ledger.Row, error) {
	args := m.Called(ctx, tableID, columnName, value)
	if rows, ok := args.Get(0).([]ledger.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}
