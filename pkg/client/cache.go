package client

import "sync"

// ProgressCache is the session-scoped view of a user's progress, keyed by
// game slug. It is only ever updated with server-confirmed data: writes go
// to the server first and the response is merged back, so the cache never
// holds an optimistic value the server has not accepted.
type ProgressCache struct {
	client *Client

	mu           sync.RWMutex
	gameProgress map[string]ProgressRecord
	achievements []Achievement
	stats        *Stats
	loading      bool
	err          error
}

func NewProgressCache(client *Client) *ProgressCache {
	return &ProgressCache{
		client:       client,
		gameProgress: make(map[string]ProgressRecord),
	}
}

// Load refreshes the whole cache with three concurrent fetches. The cache is
// updated only after all three settle; if any fails, the previous state is
// kept and the error is recorded. Without a credential the refresh is
// skipped entirely.
func (p *ProgressCache) Load() error {
	if p.client.Token == "" {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
		return nil
	}

	p.mu.Lock()
	p.loading = true
	p.err = nil
	p.mu.Unlock()

	var (
		records      []ProgressRecord
		achievements []Achievement
		stats        *Stats

		errProgress     error
		errAchievements error
		errStats        error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		records, errProgress = p.client.GetGameProgress()
	}()
	go func() {
		defer wg.Done()
		achievements, errAchievements = p.client.GetAchievements()
	}()
	go func() {
		defer wg.Done()
		stats, errStats = p.client.GetStats()
	}()
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	for _, err := range []error{errProgress, errAchievements, errStats} {
		if err != nil {
			p.err = err
			return err
		}
	}

	indexed := make(map[string]ProgressRecord, len(records))
	for _, record := range records {
		indexed[record.URLPath] = record
	}
	p.gameProgress = indexed
	p.achievements = achievements
	p.stats = stats
	return nil
}

// SubmitScore sends the score to the server and merges the confirmed record
// into the cache, then refreshes stats with a second call so the displayed
// aggregates stay current. On failure nothing local changes and the error is
// both recorded and returned.
func (p *ProgressCache) SubmitScore(gameID uint, score int) (*ProgressRecord, error) {
	record, err := p.client.UpdateGameProgress(gameID, score)
	if err != nil {
		p.setError(err)
		return nil, err
	}

	p.mu.Lock()
	p.err = nil
	p.gameProgress[record.URLPath] = *record
	p.mu.Unlock()

	stats, err := p.client.GetStats()
	if err != nil {
		p.setError(err)
		return record, err
	}

	p.mu.Lock()
	p.stats = stats
	p.mu.Unlock()
	return record, nil
}

// Lookup reads the cached record for a game slug. No network access.
func (p *ProgressCache) Lookup(urlPath string) (ProgressRecord, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	record, ok := p.gameProgress[urlPath]
	return record, ok
}

func (p *ProgressCache) Achievements() []Achievement {
	p.mu.RLock()
	defer p.mu.RUnlock()
	achievements := make([]Achievement, len(p.achievements))
	copy(achievements, p.achievements)
	return achievements
}

func (p *ProgressCache) Stats() *Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stats == nil {
		return nil
	}
	stats := *p.stats
	return &stats
}

func (p *ProgressCache) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *ProgressCache) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Reset wipes the cached state. Call on sign-out so the next session never
// sees the previous user's progress.
func (p *ProgressCache) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameProgress = make(map[string]ProgressRecord)
	p.achievements = nil
	p.stats = nil
	p.loading = false
	p.err = nil
}

func (p *ProgressCache) setError(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}
