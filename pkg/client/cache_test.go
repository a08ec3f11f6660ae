package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeProgressServer serves the progress API with adjustable failures so
// cache tests can flip endpoints between loads.
type fakeProgressServer struct {
	server *httptest.Server

	requests         int64
	failProgress     atomic.Bool
	failAchievements atomic.Bool
	failStats        atomic.Bool
	failSubmit       atomic.Bool

	mu           sync.Mutex
	progress     []ProgressRecord
	achievements []Achievement
	stats        Stats
	submitResult ProgressRecord
}

func (f *fakeProgressServer) setStats(stats Stats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats = stats
}

func newFakeProgressServer() *fakeProgressServer {
	f := &fakeProgressServer{
		progress: []ProgressRecord{
			{Name: "Pong", URLPath: "pong", HighScore: 50, TimesPlayed: 1},
			{Name: "Snake", URLPath: "snake", HighScore: 20, TimesPlayed: 4},
		},
		achievements: []Achievement{
			{Name: "First Steps", Description: "Play your first game", PointsReward: 10},
		},
		stats:        Stats{Points: 130, Streak: 1, AchievementsCount: 1, GamesPlayed: 2},
		submitResult: ProgressRecord{UserID: 1, GameID: 2, Name: "Pong", URLPath: "pong", HighScore: 80, TimesPlayed: 2},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /progress/games", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.requests, 1)
		if f.failProgress.Load() {
			fail(w)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.progress)
	})
	mux.HandleFunc("POST /progress/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.requests, 1)
		if f.failSubmit.Load() {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Game not found"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.submitResult)
	})
	mux.HandleFunc("GET /progress/achievements", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.requests, 1)
		if f.failAchievements.Load() {
			fail(w)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.achievements)
	})
	mux.HandleFunc("GET /progress/stats", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.requests, 1)
		if f.failStats.Load() {
			fail(w)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.stats)
	})

	f.server = httptest.NewServer(mux)
	return f
}

func fail(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"message": "Server error"})
}

func newTestCache(f *fakeProgressServer, token string) *ProgressCache {
	return NewProgressCache(New(f.server.URL, token))
}

func TestProgressCache_Load(t *testing.T) {
	f := newFakeProgressServer()
	defer f.server.Close()
	cache := newTestCache(f, "token123")

	assert.NoError(t, cache.Load())
	assert.False(t, cache.Loading())
	assert.NoError(t, cache.Err())

	record, ok := cache.Lookup("pong")
	assert.True(t, ok)
	assert.Equal(t, 50, record.HighScore)

	record, ok = cache.Lookup("snake")
	assert.True(t, ok)
	assert.Equal(t, 4, record.TimesPlayed)

	assert.Len(t, cache.Achievements(), 1)
	assert.Equal(t, 130, cache.Stats().Points)
}

func TestProgressCache_Load_NoCredentialSkipsRefresh(t *testing.T) {
	f := newFakeProgressServer()
	defer f.server.Close()
	cache := newTestCache(f, "")

	assert.NoError(t, cache.Load())
	assert.False(t, cache.Loading())
	assert.Zero(t, atomic.LoadInt64(&f.requests))

	_, ok := cache.Lookup("pong")
	assert.False(t, ok)
}

func TestProgressCache_Load_FailureKeepsPreviousState(t *testing.T) {
	f := newFakeProgressServer()
	defer f.server.Close()
	cache := newTestCache(f, "token123")

	assert.NoError(t, cache.Load())

	f.failAchievements.Store(true)
	err := cache.Load()
	assert.Error(t, err)
	assert.Error(t, cache.Err())
	assert.False(t, cache.Loading())

	// previous data survives the failed refresh
	record, ok := cache.Lookup("pong")
	assert.True(t, ok)
	assert.Equal(t, 50, record.HighScore)
	assert.Len(t, cache.Achievements(), 1)
	assert.Equal(t, 130, cache.Stats().Points)
}

func TestProgressCache_SubmitScore(t *testing.T) {
	f := newFakeProgressServer()
	defer f.server.Close()
	cache := newTestCache(f, "token123")
	assert.NoError(t, cache.Load())

	f.setStats(Stats{Points: 210, Streak: 1, AchievementsCount: 1, GamesPlayed: 2})

	record, err := cache.SubmitScore(2, 80)
	assert.NoError(t, err)
	assert.Equal(t, 80, record.HighScore)

	cached, ok := cache.Lookup("pong")
	assert.True(t, ok)
	assert.Equal(t, 80, cached.HighScore)
	assert.Equal(t, 2, cached.TimesPlayed)

	// stats were re-fetched after the write
	assert.Equal(t, 210, cache.Stats().Points)
}

func TestProgressCache_SubmitScore_FailureLeavesStateUntouched(t *testing.T) {
	f := newFakeProgressServer()
	defer f.server.Close()
	cache := newTestCache(f, "token123")
	assert.NoError(t, cache.Load())

	f.failSubmit.Store(true)
	record, err := cache.SubmitScore(2, 80)
	assert.Nil(t, record)
	assert.Error(t, err)

	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Game not found", reqErr.Message)
	assert.Equal(t, err, cache.Err())

	cached, ok := cache.Lookup("pong")
	assert.True(t, ok)
	assert.Equal(t, 50, cached.HighScore)
	assert.Equal(t, 1, cached.TimesPlayed)
	assert.Equal(t, 130, cache.Stats().Points)
}

func TestProgressCache_SubmitScore_StatsRefreshFailureRecorded(t *testing.T) {
	f := newFakeProgressServer()
	defer f.server.Close()
	cache := newTestCache(f, "token123")
	assert.NoError(t, cache.Load())

	f.failStats.Store(true)
	record, err := cache.SubmitScore(2, 80)
	assert.Error(t, err)
	assert.NotNil(t, record)

	// the confirmed record is merged even though the stats refresh failed
	cached, ok := cache.Lookup("pong")
	assert.True(t, ok)
	assert.Equal(t, 80, cached.HighScore)
	assert.Equal(t, 130, cache.Stats().Points)
	assert.Error(t, cache.Err())
}

func TestProgressCache_Lookup_Missing(t *testing.T) {
	f := newFakeProgressServer()
	defer f.server.Close()
	cache := newTestCache(f, "token123")
	assert.NoError(t, cache.Load())

	_, ok := cache.Lookup("does-not-exist")
	assert.False(t, ok)
}

func TestProgressCache_Reset(t *testing.T) {
	f := newFakeProgressServer()
	defer f.server.Close()
	cache := newTestCache(f, "token123")
	assert.NoError(t, cache.Load())

	cache.Reset()

	_, ok := cache.Lookup("pong")
	assert.False(t, ok)
	assert.Nil(t, cache.Stats())
	assert.Empty(t, cache.Achievements())
	assert.NoError(t, cache.Err())
	assert.False(t, cache.Loading())
}
