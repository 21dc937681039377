package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

type memoryEntry struct {
	game      entity.Game
	expiresAt time.Time
}

type memoryGame struct {
	mu        sync.Mutex
	games     map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryGameRepository keeps games in process memory. Expired entries are
// dropped on access and swept from the whole map on write, at most once per ttl.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, sessionID string, game *entity.Game) error {
	if sessionID == "" {
		return apperror.ErrSessionRequired
	}

	now := that.now()

	entry := memoryEntry{game: *game}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sweep(now)
	that.games[sessionID] = entry

	return nil
}

func (that *memoryGame) GetBySession(_ context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.games[sessionID]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	if that.expired(entry) {
		delete(that.games, sessionID)
		return nil, apperror.ErrGameNotFound
	}

	game := entry.game

	return &game, nil
}

func (that *memoryGame) expired(entry memoryEntry) bool {
	return isExpired(entry, that.now())
}

// sweep drops every expired entry. Caller holds mu.
func (that *memoryGame) sweep(now time.Time) {
	if that.ttl <= 0 || now.Before(that.nextSweep) {
		return
	}

	for sessionID, entry := range that.games {
		if isExpired(entry, now) {
			delete(that.games, sessionID)
		}
	}

	that.nextSweep = now.Add(that.ttl)
}

func isExpired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}
