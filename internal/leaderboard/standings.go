package leaderboard

import "sort"

// Standings returns every player ordered best first. The order is a strict
// total order, so repeated calls on unchanged state return the same sequence.
func (lb *Leaderboard) Standings() []Player {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return lb.standingsLocked()
}

// TopN returns the first n entries of Standings, with n clamped to [0, Len].
func (lb *Leaderboard) TopN(n int) []Player {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if n <= 0 {
		return []Player{}
	}
	standings := lb.standingsLocked()
	if n > len(standings) {
		n = len(standings)
	}
	return standings[:n]
}

// Rank returns the 1-based standings position of the named player.
func (lb *Leaderboard) Rank(name string) (int, bool) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if _, ok := lb.index[name]; !ok {
		return 0, false
	}
	for i, p := range lb.standingsLocked() {
		if p.Name == name {
			return i + 1, true
		}
	}
	return 0, false
}

// PlayerWithRank returns the named player together with its rank, both read
// from the same state.
func (lb *Leaderboard) PlayerWithRank(name string) (Player, int, bool) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if _, ok := lb.index[name]; !ok {
		return Player{}, 0, false
	}
	for i, p := range lb.standingsLocked() {
		if p.Name == name {
			return p, i + 1, true
		}
	}
	return Player{}, 0, false
}

func (lb *Leaderboard) standingsLocked() []Player {
	out := make([]Player, len(lb.players))
	for i, p := range lb.players {
		out[i] = *p
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ranksAbove(out[i], out[j], lb.ordering)
	})
	return out
}

// ranksAbove reports whether a is placed strictly before b.
func ranksAbove(a, b Player, ordering Ordering) bool {
	if ordering == OrderByRating && a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	if ar, br := a.WinRate(), b.WinRate(); ar != br {
		return ar > br
	}
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.Losses != b.Losses {
		return a.Losses < b.Losses
	}
	return a.Name < b.Name
}
