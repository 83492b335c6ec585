package leaderboard

import (
	"github.com/mauv0809/elo-ladder/internal/rating"
)

// Snapshot is the portable form of a leaderboard. Players are listed in
// insertion order.
type Snapshot struct {
	Label   string   `json:"label" msgpack:"label"`
	KFactor float64  `json:"k_factor" msgpack:"k_factor"`
	Players []Player `json:"players" msgpack:"players"`
}

// ToPortable copies the leaderboard into its portable form.
func (lb *Leaderboard) ToPortable() Snapshot {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	players := make([]Player, len(lb.players))
	for i, p := range lb.players {
		players[i] = *p
	}
	return Snapshot{
		Label:   lb.label,
		KFactor: lb.model.KFactor,
		Players: players,
	}
}

// FromPortable rebuilds a leaderboard from its portable form.
func FromPortable(s Snapshot, opts ...Option) (*Leaderboard, error) {
	lb, err := New(s.Label, s.KFactor, opts...)
	if err != nil {
		return nil, err
	}
	players, index, err := buildPlayers(s.Players)
	if err != nil {
		return nil, err
	}
	lb.players = players
	lb.index = index
	return lb, nil
}

// Restore replaces the players of lb with those in s. The snapshot must carry
// the same label; its k-factor replaces the current one. Nothing changes when
// the snapshot is invalid.
func (lb *Leaderboard) Restore(s Snapshot) error {
	if s.Label != lb.label {
		return invalidArgument("snapshot label %q does not match leaderboard %q", s.Label, lb.label)
	}
	model, err := rating.New(s.KFactor)
	if err != nil {
		return invalidArgument("%v", err)
	}
	players, index, err := buildPlayers(s.Players)
	if err != nil {
		return err
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.model = model
	lb.players = players
	lb.index = index
	return nil
}

func buildPlayers(records []Player) ([]*Player, map[string]*Player, error) {
	players := make([]*Player, 0, len(records))
	index := make(map[string]*Player, len(records))
	for _, rec := range records {
		r := rec.Rating
		in := NewPlayer{Name: rec.Name, Wins: rec.Wins, Losses: rec.Losses, Rating: &r}
		if err := in.Validate(); err != nil {
			return nil, nil, err
		}
		if _, exists := index[rec.Name]; exists {
			return nil, nil, &DuplicateNameError{Name: rec.Name}
		}
		p := rec
		p.Rating = rating.Round2(rec.Rating)
		players = append(players, &p)
		index[p.Name] = &p
	}
	return players, index, nil
}
