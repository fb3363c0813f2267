package testsupport

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"slipflow/internal/docstore"
	"slipflow/internal/slip"
)

// MemStore is an in-memory stand-in for docstore.Store. It satisfies
// workflow.Store, refsync.Sink, and notifications.SettingsSource, with
// injectable failures for exercising error paths.
type MemStore struct {
	mu       sync.Mutex
	counters map[string]int64
	slips    []*slip.Slip
	parts    map[string]docstore.Part
	testing  bool

	// SequenceErr, CreateErr, and UpdateErr fail the matching operation when
	// set. FailStockCodes fails UpsertPart for the listed codes only.
	SequenceErr    error
	CreateErr      error
	UpdateErr      error
	SettingsErr    error
	FailStockCodes map[string]error
}

// NewMemStore returns an empty store with email testing mode on, matching the
// document store's default for an absent settings document.
func NewMemStore() *MemStore {
	return &MemStore{
		counters: make(map[string]int64),
		parts:    make(map[string]docstore.Part),
		testing:  true,
	}
}

func (m *MemStore) NextSequence(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SequenceErr != nil {
		return 0, m.SequenceErr
	}
	m.counters[name]++
	return m.counters[name], nil
}

// SequenceValue returns the current counter without incrementing it.
func (m *MemStore) SequenceValue(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name], nil
}

func (m *MemStore) CreateSlip(_ context.Context, doc *slip.Slip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	clone := *doc
	m.slips = append(m.slips, &clone)
	return nil
}

func (m *MemStore) SlipBySlipID(_ context.Context, slipID string) (*slip.Slip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.slips {
		if doc.SlipID == slipID {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *MemStore) SlipsByType(_ context.Context, slipType slip.Type, status slip.Status) ([]*slip.Slip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matches []*slip.Slip
	for _, doc := range m.slips {
		if doc.Type != slipType {
			continue
		}
		if status != "" && doc.Status != status {
			continue
		}
		clone := *doc
		matches = append(matches, &clone)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

func (m *MemStore) FindDependency(_ context.Context, orderNumber string, depType slip.Type, depStatus slip.Status) (*slip.Slip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var oldest *slip.Slip
	for _, doc := range m.slips {
		if doc.Type != depType || doc.OrderNumber != orderNumber || doc.Status != depStatus {
			continue
		}
		if oldest == nil || doc.CreatedAt.Before(oldest.CreatedAt) {
			oldest = doc
		}
	}
	if oldest == nil {
		return nil, nil
	}
	clone := *oldest
	return &clone, nil
}

func (m *MemStore) UpdateStatus(_ context.Context, slipID string, status slip.Status, review *slip.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for _, doc := range m.slips {
		if doc.SlipID != slipID {
			continue
		}
		doc.Status = status
		if review != nil {
			if doc.Dispatch == nil {
				doc.Dispatch = &slip.DispatchPayload{}
			}
			doc.Dispatch.Review = review
		}
		return nil
	}
	return fmt.Errorf("update slip %s status: no such slip", slipID)
}

func (m *MemStore) UpsertPart(_ context.Context, part docstore.Part) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailStockCodes[part.StockCode]; err != nil {
		return err
	}
	m.parts[part.StockCode] = part
	return nil
}

// Parts returns the upserted parts keyed by stock code.
func (m *MemStore) Parts() map[string]docstore.Part {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]docstore.Part, len(m.parts))
	for k, v := range m.parts {
		out[k] = v
	}
	return out
}

func (m *MemStore) EmailTestingEnabled(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SettingsErr != nil {
		return false, m.SettingsErr
	}
	return m.testing, nil
}

func (m *MemStore) SetEmailTesting(_ context.Context, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.testing = enabled
	return nil
}

// AllSlips returns every stored slip in insertion order.
func (m *MemStore) AllSlips() []*slip.Slip {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*slip.Slip, 0, len(m.slips))
	for _, doc := range m.slips {
		clone := *doc
		out = append(out, &clone)
	}
	return out
}
