package app

import (
	"sort"
	"sync"

	"party-trivia-service/internal/domain"
)

func (s *Service) buildScoreboard(session domain.Session) domain.Scoreboard {
	entries := make([]domain.ScoreboardEntry, 0, len(session.Participants))
	byID := make(map[string]domain.Participant, len(session.Participants))
	for _, p := range session.Participants {
		byID[p.ID] = p
		entries = append(entries, domain.ScoreboardEntry{
			ParticipantID: p.ID,
			Name:          p.Name,
			Avatar:        p.Avatar,
			Score:         p.Score,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		pi, pj := byID[entries[i].ParticipantID], byID[entries[j].ParticipantID]
		if !pi.AddedAt.Equal(pj.AddedAt) {
			return pi.AddedAt.Before(pj.AddedAt)
		}
		return entries[i].Name < entries[j].Name
	})

	return domain.Scoreboard{
		SessionID: session.ID,
		Entries:   entries,
		UpdatedAt: s.now(),
	}
}

// watcherHub fans scoreboard snapshots out to live subscribers, keyed by
// session id. Slow subscribers get stale snapshots dropped rather than
// blocking the broadcast.
type watcherHub struct {
	mu       sync.Mutex
	watchers map[string]map[chan domain.Scoreboard]struct{}
}

func newWatcherHub() *watcherHub {
	return &watcherHub{watchers: make(map[string]map[chan domain.Scoreboard]struct{})}
}

func (h *watcherHub) subscribe(sessionID string) (chan domain.Scoreboard, func()) {
	ch := make(chan domain.Scoreboard, 8)

	h.mu.Lock()
	set, ok := h.watchers[sessionID]
	if !ok {
		set = make(map[chan domain.Scoreboard]struct{})
		h.watchers[sessionID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		set, ok := h.watchers[sessionID]
		if !ok {
			return
		}
		if _, subscribed := set[ch]; subscribed {
			delete(set, ch)
			close(ch)
		}
		if len(set) == 0 {
			delete(h.watchers, sessionID)
		}
	}
	return ch, cancel
}

func (h *watcherHub) broadcast(sessionID string, board domain.Scoreboard) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.watchers[sessionID] {
		select {
		case ch <- board:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- board
		}
	}
}
