package repository

import (
	"context"
	"sort"
	"sync"
	"time"
	"verifybot/internal/models"
)

// Memory is a thread-safe in-memory Binding and AllowList store. Uniqueness of
// requester and external ids is checked and applied under one lock.
type Memory struct {
	mu         sync.RWMutex
	bindings   map[string]models.IdentityBinding // requester id -> binding
	byExternal map[string]string                 // external id -> requester id

	allow    map[string]allowListRecord
	allowSeq int64

	now func() time.Time
}

type allowListRecord struct {
	entry models.AllowListEntry
	seq   int64
}

func NewMemory() *Memory {
	return &Memory{
		bindings:   make(map[string]models.IdentityBinding),
		byExternal: make(map[string]string),
		allow:      make(map[string]allowListRecord),
		now:        time.Now,
	}
}

func (m *Memory) FindByExternalID(_ context.Context, externalID string) (*models.IdentityBinding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	requesterID, ok := m.byExternal[externalID]
	if !ok {
		return nil, nil
	}
	b := m.bindings[requesterID]
	return &b, nil
}

func (m *Memory) FindByRequesterID(_ context.Context, requesterID string) (*models.IdentityBinding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bindings[requesterID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *Memory) Upsert(_ context.Context, binding *models.IdentityBinding) (*models.IdentityBinding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if owner, ok := m.byExternal[binding.ExternalID]; ok && owner != binding.RequesterID {
		return nil, ErrExternalIDTaken
	}

	now := m.now()
	stored, exists := m.bindings[binding.RequesterID]
	if exists {
		delete(m.byExternal, stored.ExternalID)
	} else {
		stored = models.IdentityBinding{RequesterID: binding.RequesterID, CreatedAt: now}
	}
	stored.RequesterLabel = binding.RequesterLabel
	stored.ExternalID = binding.ExternalID
	stored.ExternalLabel = binding.ExternalLabel
	stored.UpdatedAt = now

	m.bindings[stored.RequesterID] = stored
	m.byExternal[stored.ExternalID] = stored.RequesterID
	return &stored, nil
}

func (m *Memory) UpdateExternalID(_ context.Context, requesterID, externalID, externalLabel string) (*models.IdentityBinding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.bindings[requesterID]
	if !ok {
		return nil, ErrNotFound
	}
	if owner, taken := m.byExternal[externalID]; taken && owner != requesterID {
		return nil, ErrExternalIDTaken
	}

	delete(m.byExternal, stored.ExternalID)
	stored.ExternalID = externalID
	stored.ExternalLabel = externalLabel
	stored.UpdatedAt = m.now()

	m.bindings[requesterID] = stored
	m.byExternal[externalID] = requesterID
	return &stored, nil
}

func (m *Memory) DeleteByExternalID(_ context.Context, externalID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	requesterID, ok := m.byExternal[externalID]
	if !ok {
		return false, nil
	}
	delete(m.byExternal, externalID)
	delete(m.bindings, requesterID)
	return true, nil
}

func (m *Memory) List(_ context.Context) ([]models.IdentityBinding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bindings := make([]models.IdentityBinding, 0, len(m.bindings))
	for _, b := range m.bindings {
		bindings = append(bindings, b)
	}
	sort.Slice(bindings, func(i, j int) bool {
		if !bindings[i].CreatedAt.Equal(bindings[j].CreatedAt) {
			return bindings[i].CreatedAt.Before(bindings[j].CreatedAt)
		}
		return bindings[i].RequesterID < bindings[j].RequesterID
	})
	return bindings, nil
}

// Size returns the number of stored bindings.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bindings)
}

// AllowListStore exposes the allow list methods, whose names overlap with Binding.
func (m *Memory) AllowListStore() AllowList {
	return memoryAllowList{m}
}

type memoryAllowList struct {
	m *Memory
}

func (a memoryAllowList) Add(_ context.Context, entry *models.AllowListEntry) error {
	m := a.m
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rec, ok := m.allow[entry.ExternalID]
	if !ok {
		m.allowSeq++
		rec = allowListRecord{
			entry: models.AllowListEntry{ExternalID: entry.ExternalID, CreatedAt: now},
			seq:   m.allowSeq,
		}
	}
	rec.entry.ExternalLabel = entry.ExternalLabel
	rec.entry.UpdatedAt = now
	m.allow[entry.ExternalID] = rec
	return nil
}

func (a memoryAllowList) Remove(_ context.Context, externalID string) (bool, error) {
	m := a.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.allow[externalID]; !ok {
		return false, nil
	}
	delete(m.allow, externalID)
	return true, nil
}

func (a memoryAllowList) Get(_ context.Context, externalID string) (*models.AllowListEntry, error) {
	m := a.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.allow[externalID]
	if !ok {
		return nil, nil
	}
	e := rec.entry
	return &e, nil
}

func (a memoryAllowList) List(_ context.Context) ([]models.AllowListEntry, error) {
	m := a.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]allowListRecord, 0, len(m.allow))
	for _, rec := range m.allow {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })

	entries := make([]models.AllowListEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, rec.entry)
	}
	return entries, nil
}
