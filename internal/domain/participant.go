package domain

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Avatars is the fixed emoji palette participants draw from at join time.
var Avatars = []string{
	"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯",
	"🦁", "🐮", "🐷", "🐸", "🐵", "🐔", "🐧", "🐦", "🐤", "🦆",
	"🦉", "🦅", "🦇", "🐺", "🐗", "🐴", "🦄", "🐝", "🐛", "🦋",
	"🐌", "🐞", "🐜", "🦟", "🦗", "🦂", "🐢", "🐍", "🦎", "🦖",
	"🦕", "🐙", "🦑", "🦐", "🦞", "🦀", "🐡", "🐠", "🐟", "🐬",
}

// NewParticipant builds a participant with a fresh ID, a random avatar and a
// zero score. The avatar is fixed for the lifetime of the participant.
func NewParticipant(name string, now time.Time) Participant {
	return Participant{
		ID:      uuid.NewString(),
		Name:    name,
		Avatar:  Avatars[rand.Intn(len(Avatars))],
		Score:   0,
		AddedAt: now,
	}
}
