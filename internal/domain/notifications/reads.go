package notifications

import (
	"sort"
	"sync"
)

// ReadMarks tracks which notification ids a user has read. Content is never
// persisted, only the id set, keyed the same way the dashboard keys its
// local storage entries.
type ReadMarks struct {
	mu    sync.RWMutex
	byKey map[string]map[string]bool
}

func NewReadMarks() *ReadMarks {
	return &ReadMarks{byKey: make(map[string]map[string]bool)}
}

func readKey(userID string) string {
	return "read-notifications-" + userID
}

func (r *ReadMarks) Mark(userID, notificationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := readKey(userID)
	if r.byKey[key] == nil {
		r.byKey[key] = make(map[string]bool)
	}
	r.byKey[key][notificationID] = true
}

func (r *ReadMarks) IsRead(userID, notificationID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byKey[readKey(userID)][notificationID]
}

// IDs returns the read ids for a user, mirroring the stored JSON array.
func (r *ReadMarks) IDs(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	marks := r.byKey[readKey(userID)]
	out := make([]string, 0, len(marks))
	for id := range marks {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
