package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stockview/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockListClient is a mock implementation of domain.ListClient
type MockListClient struct {
	mu     sync.Mutex
	data   map[string][]domain.RawRecord
	errors map[string]error
	calls  []string
}

func NewMockListClient() *MockListClient {
	return &MockListClient{
		data:   make(map[string][]domain.RawRecord),
		errors: make(map[string]error),
	}
}

func (m *MockListClient) ListAll(ctx context.Context, entityType string, filters []domain.ListFilter) ([]domain.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, entityType)
	if err := m.errors[entityType]; err != nil {
		return nil, err
	}
	return m.data[entityType], nil
}

func TestNewLiveService_DefaultTypes(t *testing.T) {
	svc := NewLiveService(NewMockListClient(), LiveServiceConfig{Types: EntityTypes{Bin: "Location"}})

	assert.Equal(t, "InventoryBalance", svc.types.Inventory)
	assert.Equal(t, "LotOrSerial", svc.types.LotSerial)
	assert.Equal(t, "PartItem", svc.types.Item)
	assert.Equal(t, "Location", svc.types.Bin)
}

func TestLiveService_Rows(t *testing.T) {
	client := NewMockListClient()
	client.data["InventoryBalance"] = []domain.RawRecord{balance(4, 10, 20, 30), balance(0, 10, 20, 30)}
	client.data["LotOrSerial"] = []domain.RawRecord{{"Id": 10.0, "Name": "LOT-10"}}
	client.data["PartItem"] = []domain.RawRecord{{"Id": 20.0, "Name": "Widget", "AvgCost": 2.0}}
	client.data["Bin"] = []domain.RawRecord{{"Id": 30.0, "Name": "A-01"}}

	svc := NewLiveService(client, LiveServiceConfig{})
	rows, err := svc.Rows(context.Background(), domain.LiveQuery{})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].Item)
	assert.Equal(t, "LOT-10", rows[0].Serial)
	assert.Equal(t, "A-01", rows[0].Bin)
	assert.Equal(t, 2.0, *rows[0].Cost)

	require.Len(t, client.calls, 4)
	assert.Equal(t, "InventoryBalance", client.calls[0])
	assert.ElementsMatch(t, []string{"LotOrSerial", "PartItem", "Bin"}, client.calls[1:])
}

func TestLiveService_BalanceFailureSkipsDictionaries(t *testing.T) {
	client := NewMockListClient()
	client.errors["InventoryBalance"] = &domain.FetchError{Status: 500, Body: "boom"}

	_, err := NewLiveService(client, LiveServiceConfig{}).Rows(context.Background(), domain.LiveQuery{})

	assert.ErrorIs(t, err, domain.ErrUpstreamFetch)
	assert.Equal(t, []string{"InventoryBalance"}, client.calls)
}

func TestLiveService_DictionaryFailureAborts(t *testing.T) {
	client := NewMockListClient()
	client.data["InventoryBalance"] = []domain.RawRecord{balance(4, 10, 20, 30)}
	client.errors["PartItem"] = errors.New("item fetch failed")

	rows, err := NewLiveService(client, LiveServiceConfig{}).Rows(context.Background(), domain.LiveQuery{})

	assert.Nil(t, rows)
	assert.EqualError(t, err, "item fetch failed")
}
