package usecase

import (
	"context"
	"log"

	"github.com/stockview/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// EntityTypes names the OrderTime list types queried by the live pipeline
type EntityTypes struct {
	Inventory string
	LotSerial string
	Item      string
	Bin       string
}

// DefaultEntityTypes are used for any type left empty
var DefaultEntityTypes = EntityTypes{
	Inventory: "InventoryBalance",
	LotSerial: "LotOrSerial",
	Item:      "PartItem",
	Bin:       "Bin",
}

// LiveServiceConfig holds configuration for the live inventory service
type LiveServiceConfig struct {
	Types              EntityTypes
	EnableDebugLogging bool
}

// LiveService joins live OrderTime entities into inventory rows
type LiveService struct {
	client domain.ListClient
	types  EntityTypes
	debug  bool
}

// NewLiveService creates a new live inventory service
func NewLiveService(client domain.ListClient, config LiveServiceConfig) *LiveService {
	types := config.Types
	if types.Inventory == "" {
		types.Inventory = DefaultEntityTypes.Inventory
	}
	if types.LotSerial == "" {
		types.LotSerial = DefaultEntityTypes.LotSerial
	}
	if types.Item == "" {
		types.Item = DefaultEntityTypes.Item
	}
	if types.Bin == "" {
		types.Bin = DefaultEntityTypes.Bin
	}

	return &LiveService{
		client: client,
		types:  types,
		debug:  config.EnableDebugLogging,
	}
}

// Rows fetches balances, then the three lookup collections concurrently,
// and joins them. Any failed fetch aborts the whole request.
func (s *LiveService) Rows(ctx context.Context, q domain.LiveQuery) ([]domain.NormalizedRow, error) {
	balances, err := s.client.ListAll(ctx, s.types.Inventory, nil)
	if err != nil {
		return nil, err
	}

	var lots, items, bins []domain.RawRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lots, err = s.client.ListAll(gctx, s.types.LotSerial, nil)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.client.ListAll(gctx, s.types.Item, nil)
		return err
	})
	g.Go(func() error {
		var err error
		bins, err = s.client.ListAll(gctx, s.types.Bin, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := BuildRows(balances, Indices{
		Lots:  BuildIndex(lots),
		Items: BuildIndex(items),
		Bins:  BuildIndex(bins),
	}, q)

	if s.debug {
		log.Printf("[Live] balances=%d lots=%d items=%d bins=%d rows=%d",
			len(balances), len(lots), len(items), len(bins), len(rows))
	}
	return rows, nil
}
