package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

// In-memory fakes for the repository interfaces the services depend on.

type fakePresetRepo struct {
	mu      sync.Mutex
	nextID  int64
	presets map[int64]*models.Preset
}

func newFakePresetRepo() *fakePresetRepo {
	return &fakePresetRepo{presets: make(map[int64]*models.Preset)}
}

func (f *fakePresetRepo) Create(ctx context.Context, preset *models.Preset) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *preset
	cp.ID = f.nextID
	f.presets[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakePresetRepo) GetByID(ctx context.Context, id int64) (*models.Preset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.presets[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePresetRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Preset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Preset
	for id := int64(1); id <= f.nextID; id++ {
		if p, ok := f.presets[id]; ok && p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePresetRepo) Update(ctx context.Context, preset *models.Preset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *preset
	f.presets[cp.ID] = &cp
	return nil
}

func (f *fakePresetRepo) CheckByUserID(ctx context.Context, presetID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.presets[presetID]
	return ok && p.UserID == userID, nil
}

func (f *fakePresetRepo) Remove(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.presets, id)
	return nil
}

type fakeContentRepo struct {
	mu      sync.Mutex
	nextID  int64
	content map[int64]*models.ScheduledContent
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{content: make(map[int64]*models.ScheduledContent)}
}

func (f *fakeContentRepo) Create(ctx context.Context, c *models.ScheduledContent) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *c
	cp.ID = f.nextID
	f.content[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeContentRepo) GetByID(ctx context.Context, id int64) (*models.ScheduledContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.content[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeContentRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ScheduledContent
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.content[id]; ok && c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) GetByDateRange(ctx context.Context, userID int64, from, to string) ([]*models.ScheduledContent, error) {
	all, _ := f.GetByUserID(ctx, userID)
	var out []*models.ScheduledContent
	for _, c := range all {
		if c.Date >= from && c.Date <= to {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) Update(ctx context.Context, c *models.ScheduledContent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.content[cp.ID] = &cp
	return nil
}

func (f *fakeContentRepo) UpdateStatus(ctx context.Context, status string, contentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.content[contentID]; ok {
		c.Status = status
	}
	return nil
}

func (f *fakeContentRepo) CheckByUserID(ctx context.Context, contentID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.content[contentID]
	return ok && c.UserID == userID, nil
}

func (f *fakeContentRepo) CountByUserID(ctx context.Context, userID int64) (int, error) {
	all, _ := f.GetByUserID(ctx, userID)
	return len(all), nil
}

func (f *fakeContentRepo) Remove(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.content, id)
	return nil
}

type fakeUsageRepo struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{counts: make(map[string]int)}
}

func usageKey(userID int64, metric, month string) string {
	return fmt.Sprintf("%d:%s:%s", userID, metric, month)
}

func (f *fakeUsageRepo) Increment(ctx context.Context, userID int64, metric, month string, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[usageKey(userID, metric, month)] += amount
	return nil
}

func (f *fakeUsageRepo) GetCount(ctx context.Context, userID int64, metric, month string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[usageKey(userID, metric, month)], nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[int64]*models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[int64]*models.Subscription)}
}

func (f *fakeSubscriptionRepo) GetByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.subs[userID]; ok {
		cp := *s
		return &cp, true, nil
	}
	return nil, false, nil
}

func (f *fakeSubscriptionRepo) GetByStripeSubscriptionID(ctx context.Context, subID string) (*models.Subscription, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		if s.StripeSubscriptionID == subID {
			cp := *s
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *sub
	cp.ID = int64(len(f.subs) + 1)
	f.subs[cp.UserID] = &cp
	return cp.ID, nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *sub
	f.subs[cp.UserID] = &cp
	return nil
}

// stubProvider scripts per-prompt responses for orchestrator tests.
type stubProvider struct {
	mu       sync.Mutex
	name     string
	calls    []string
	failWhen func(prompt string) error
	reply    string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(ctx context.Context, req *transfer.GenerationRequest) (*transfer.GenerationResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req.Prompt)
	s.mu.Unlock()

	if s.failWhen != nil {
		if err := s.failWhen(req.Prompt); err != nil {
			return nil, err
		}
	}
	reply := s.reply
	if reply == "" {
		reply = "generated: " + req.Prompt
	}
	return &transfer.GenerationResult{Content: reply, Model: s.name, Tokens: 42, FinishReason: "stop"}, nil
}
