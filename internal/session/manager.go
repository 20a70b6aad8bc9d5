package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/minefield/internal/minesweeper"
	"github.com/louisbranch/minefield/internal/platform/id"
	"github.com/louisbranch/minefield/internal/random"
)

// DefaultMaxGames bounds live games when Options leaves MaxGames unset.
const DefaultMaxGames = 64

// Options configures a Manager.
type Options struct {
	// MaxGames caps the number of live games. Zero uses DefaultMaxGames.
	MaxGames int
	Clock    Clock
	// NewID generates game identifiers. Nil uses id.NewID.
	NewID func() (string, error)
}

// CreateRequest describes a new game.
type CreateRequest struct {
	Rows       int
	Cols       int
	Mines      int
	Seed       *int64
	PlayerName string
}

// Manager owns the live games.
type Manager struct {
	mu       sync.RWMutex
	games    map[string]*Game
	maxGames int
	clock    Clock
	newID    func() (string, error)
}

// NewManager creates an empty manager.
func NewManager(opts Options) *Manager {
	if opts.MaxGames <= 0 {
		opts.MaxGames = DefaultMaxGames
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = id.NewID
	}
	return &Manager{
		games:    make(map[string]*Game),
		maxGames: opts.MaxGames,
		clock:    opts.Clock,
		newID:    opts.NewID,
	}
}

// Create starts a game. When the manager is full, the oldest decided game is
// evicted; if every game is still being played, ErrGameLimit is returned.
func (m *Manager) Create(req CreateRequest) (*Game, error) {
	rng, seed, err := random.NewRand(req.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed generator: %w", err)
	}
	board, err := minesweeper.New(minesweeper.Config{
		Rows:  req.Rows,
		Cols:  req.Cols,
		Mines: req.Mines,
		Rand:  rng,
	})
	if err != nil {
		return nil, err
	}
	gameID, err := m.newID()
	if err != nil {
		return nil, fmt.Errorf("generate game id: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.games) >= m.maxGames && !m.evictDecidedLocked() {
		return nil, ErrGameLimit
	}
	game := newGame(gameID, board, m.clock, req.PlayerName, seed)
	m.games[gameID] = game
	return game, nil
}

// Get returns a live game.
func (m *Manager) Get(gameID string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	game, ok := m.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// Remove drops a game and reports whether it existed.
func (m *Manager) Remove(gameID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[gameID]; !ok {
		return false
	}
	delete(m.games, gameID)
	return true
}

// Len returns the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (m *Manager) evictDecidedLocked() bool {
	var (
		oldestID string
		oldestAt time.Time
	)
	for gameID, game := range m.games {
		if !game.status().Terminal() {
			continue
		}
		if oldestID == "" || game.createdAt.Before(oldestAt) {
			oldestID = gameID
			oldestAt = game.createdAt
		}
	}
	if oldestID == "" {
		return false
	}
	delete(m.games, oldestID)
	return true
}
