package operations

import (
	"fmt"

	"github.com/julianstephens/botroom/internal/models"
)

// Roster is the local, insertion-ordered view of the bots in the store.
// Ids are unique. It is not safe for concurrent use.
type Roster struct {
	bots []models.BotRecord
}

func NewRoster(bots ...models.BotRecord) *Roster {
	r := &Roster{}
	r.Reset(bots)
	return r
}

// Reset replaces the whole roster. Later duplicates of an id are dropped.
func (r *Roster) Reset(bots []models.BotRecord) {
	r.bots = make([]models.BotRecord, 0, len(bots))
	seen := make(map[string]bool, len(bots))
	for _, b := range bots {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		r.bots = append(r.bots, b)
	}
}

// Append adds b at the end.
func (r *Roster) Append(b models.BotRecord) error {
	if r.index(b.ID) >= 0 {
		return fmt.Errorf("bot %s is already in the roster", b.ID)
	}
	r.bots = append(r.bots, b)
	return nil
}

// Replace swaps the entry with b's id for b, keeping its position.
func (r *Roster) Replace(b models.BotRecord) error {
	i := r.index(b.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownBot, b.ID)
	}
	r.bots[i] = b
	return nil
}

// Remove deletes the entry with id. Other entries keep their order.
func (r *Roster) Remove(id string) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownBot, id)
	}
	r.bots = append(r.bots[:i], r.bots[i+1:]...)
	return nil
}

func (r *Roster) Get(id string) (models.BotRecord, bool) {
	i := r.index(id)
	if i < 0 {
		return models.BotRecord{}, false
	}
	return r.bots[i], true
}

// All returns a copy of the roster in order.
func (r *Roster) All() []models.BotRecord {
	out := make([]models.BotRecord, len(r.bots))
	copy(out, r.bots)
	return out
}

func (r *Roster) Len() int {
	return len(r.bots)
}

func (r *Roster) index(id string) int {
	for i, b := range r.bots {
		if b.ID == id {
			return i
		}
	}
	return -1
}
