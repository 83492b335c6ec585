package leaderboard

import (
	"errors"

	"github.com/mauv0809/elo-ladder/internal/rating"
)

// New creates an empty leaderboard. The k-factor must be positive.
func New(label string, kFactor float64, opts ...Option) (*Leaderboard, error) {
	model, err := rating.New(kFactor)
	if err != nil {
		return nil, invalidArgument("%v", err)
	}
	lb := &Leaderboard{
		label:    label,
		model:    model,
		ordering: OrderByRating,
		index:    make(map[string]*Player),
	}
	for _, opt := range opts {
		opt(lb)
	}
	if !lb.ordering.Valid() {
		return nil, invalidArgument("unknown ordering %q", lb.ordering)
	}
	return lb, nil
}

// Label returns the display name of the leaderboard.
func (lb *Leaderboard) Label() string {
	return lb.label
}

// KFactor returns the rating sensitivity.
func (lb *Leaderboard) KFactor() float64 {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return lb.model.KFactor
}

// Ordering returns the primary standings key in effect.
func (lb *Leaderboard) Ordering() Ordering {
	return lb.ordering
}

// Len returns the number of players.
func (lb *Leaderboard) Len() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return len(lb.players)
}

// AddPlayer registers a new player and returns it.
func (lb *Leaderboard) AddPlayer(in NewPlayer) (Player, error) {
	if err := in.Validate(); err != nil {
		return Player{}, err
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	if _, exists := lb.index[in.Name]; exists {
		return Player{}, &DuplicateNameError{Name: in.Name}
	}

	r := rating.DefaultRating
	switch {
	case in.Rating != nil:
		r = rating.Round2(*in.Rating)
	case lb.backfill:
		r = lb.model.Backfill(rating.DefaultRating, in.Wins, in.Losses)
	}

	p := &Player{Name: in.Name, Wins: in.Wins, Losses: in.Losses, Rating: r}
	lb.players = append(lb.players, p)
	lb.index[p.Name] = p
	return *p, nil
}

// RemovePlayer deletes the named player and returns its final record.
func (lb *Leaderboard) RemovePlayer(name string) (Player, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	p, ok := lb.index[name]
	if !ok {
		return Player{}, &NotFoundError{Name: name}
	}
	delete(lb.index, name)
	for i, candidate := range lb.players {
		if candidate == p {
			lb.players = append(lb.players[:i], lb.players[i+1:]...)
			break
		}
	}
	return *p, nil
}

// GetPlayer looks a player up by exact name.
func (lb *Leaderboard) GetPlayer(name string) (Player, bool) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	p, ok := lb.index[name]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// RecordMatch records that winner beat loser. Both names are resolved before
// anything is mutated, so a failed call leaves the leaderboard untouched.
func (lb *Leaderboard) RecordMatch(winnerName, loserName string) (MatchResult, error) {
	if winnerName == "" || loserName == "" {
		return MatchResult{}, invalidArgument("winner and loser are required")
	}
	if winnerName == loserName {
		return MatchResult{}, invalidArgument("a player cannot play against themselves: %q", winnerName)
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	winner, ok := lb.index[winnerName]
	if !ok {
		return MatchResult{}, &NotFoundError{Name: winnerName, Role: RoleWinner}
	}
	loser, ok := lb.index[loserName]
	if !ok {
		return MatchResult{}, &NotFoundError{Name: loserName, Role: RoleLoser}
	}

	winnerBefore, loserBefore := winner.Rating, loser.Rating

	winner.Wins++
	loser.Losses++
	lb.model.UpdateRatings(&winner.Rating, &loser.Rating)

	return MatchResult{
		Winner:      *winner,
		Loser:       *loser,
		WinnerDelta: rating.Round2(winner.Rating - winnerBefore),
		LoserDelta:  rating.Round2(loser.Rating - loserBefore),
	}, nil
}

// IsNotFound reports whether err is a NotFoundError and returns it.
func IsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}
