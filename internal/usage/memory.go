package usage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps records in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

// Save appends a record
func (m *MemoryStore) Save(_ context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

// List returns matching records, newest first
func (m *MemoryStore) List(_ context.Context, f Filter) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		if f.matches(m.records[i]) {
			out = append(out, m.records[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Summary aggregates matching records per vendor and model
func (m *MemoryStore) Summary(ctx context.Context, f Filter) ([]SummaryRow, error) {
	records, err := m.List(ctx, Filter{Vendor: f.Vendor, Model: f.Model, Since: f.Since})
	if err != nil {
		return nil, err
	}
	return summarize(records), nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

func summarize(records []Record) []SummaryRow {
	type key struct {
		vendor string
		model  string
	}
	rows := map[key]*SummaryRow{}
	for _, r := range records {
		k := key{string(r.Vendor), r.Model}
		row, ok := rows[k]
		if !ok {
			row = &SummaryRow{Vendor: r.Vendor, Model: r.Model}
			rows[k] = row
		}
		row.Runs++
		if r.Failed() {
			row.Failures++
		}
		row.Tokens.Prompt += r.Tokens.Prompt
		row.Tokens.Completion += r.Tokens.Completion
		row.Tokens.Total += r.Tokens.Total
		row.Cost.Prompt += r.Cost.Prompt
		row.Cost.Completion += r.Cost.Completion
		row.Cost.Total += r.Cost.Total
	}

	out := make([]SummaryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sortSummary(out)
	return out
}

func sortSummary(rows []SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Vendor != rows[j].Vendor {
			return rows[i].Vendor < rows[j].Vendor
		}
		return rows[i].Model < rows[j].Model
	})
}
