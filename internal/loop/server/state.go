package server

import "sort"

// TopScoresLimit is how many finished runs the leaderboard keeps.
const TopScoresLimit = 5

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	Level    int
	seq      int // Submission order; earlier runs win ties
}

// Snapshot is an immutable view of the hub for rendering.
type Snapshot struct {
	Players   int
	HighScore int
	TopScores []TopScoreEntry
}

// leaderboard holds the best finished runs since the server started.
type leaderboard struct {
	entries []TopScoreEntry
	nextSeq int
}

// add records a finished run. Returns true if it made the board.
func (lb *leaderboard) add(username string, score, level int) bool {
	if score <= 0 {
		return false
	}
	lb.nextSeq++
	lb.entries = append(lb.entries, TopScoreEntry{
		Username: username,
		Score:    score,
		Level:    level,
		seq:      lb.nextSeq,
	})
	sort.SliceStable(lb.entries, func(i, j int) bool {
		a, b := lb.entries[i], lb.entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.seq < b.seq
	})

	kept := true
	if len(lb.entries) > TopScoresLimit {
		kept = lb.entries[TopScoresLimit].seq != lb.nextSeq
		lb.entries = lb.entries[:TopScoresLimit]
	}
	return kept
}

// top returns a copy of the board, safe to hand to other goroutines.
func (lb *leaderboard) top() []TopScoreEntry {
	return append([]TopScoreEntry(nil), lb.entries...)
}
