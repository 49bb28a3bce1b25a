// Package approval follows hotel owners whose account is waiting for an
// admin decision.
package approval

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// DefaultSchedule polls every 30 seconds, with no backoff or jitter.
const DefaultSchedule = "@every 30s"

// Profiles is the profile boundary of the REST API.
type Profiles interface {
	Me(ctx context.Context, token string) (model.User, error)
}

// State is the approval state of one owner as last seen by the gateway.
type State struct {
	UserID    string    `json:"userId"`
	Approved  bool      `json:"isApproved"`
	CheckedAt time.Time `json:"checkedAt"`
}

type entry struct {
	token string
	state State
}

// Tracker keeps the set of pending owners and refreshes it on a schedule.
type Tracker struct {
	profiles Profiles
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]*entry
	settled map[string]State
}

func NewTracker(p Profiles) *Tracker {
	return &Tracker{
		profiles: p,
		now:      time.Now,
		pending:  make(map[string]*entry),
		settled:  make(map[string]State),
	}
}

// Status returns the tracked state for userID.  An owner seen for the first
// time is looked up at once and, if still pending, joins the polling set.
func (t *Tracker) Status(ctx context.Context, userID, token string) (State, error) {
	t.mu.Lock()
	if st, ok := t.settled[userID]; ok {
		t.mu.Unlock()
		return st, nil
	}
	if e, ok := t.pending[userID]; ok {
		e.token = token
		st := e.state
		t.mu.Unlock()
		return st, nil
	}
	t.mu.Unlock()

	u, err := t.profiles.Me(ctx, token)
	if err != nil {
		return State{}, err
	}
	st := t.record(userID, token, u)
	return st, nil
}

// Track adds an owner to the polling set without a lookup.
func (t *Tracker) Track(userID, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.settled[userID]; ok {
		return
	}
	if e, ok := t.pending[userID]; ok {
		e.token = token
		return
	}
	t.pending[userID] = &entry{token: token, state: State{UserID: userID}}
}

// Forget drops userID from the tracker, e.g. on logout.
func (t *Tracker) Forget(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, userID)
	delete(t.settled, userID)
}

// Pending returns the number of owners still being polled.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Poll asks the backend once for every pending owner.  An owner whose token
// the backend refuses (401/403) is dropped; other failures keep the owner
// pending until the next tick.
func (t *Tracker) Poll(ctx context.Context) {
	t.mu.Lock()
	batch := make(map[string]string, len(t.pending))
	for id, e := range t.pending {
		batch[id] = e.token
	}
	t.mu.Unlock()

	for id, token := range batch {
		u, err := t.profiles.Me(ctx, token)
		if err != nil {
			if apiclient.IsStatus(err, http.StatusUnauthorized) || apiclient.IsStatus(err, http.StatusForbidden) {
				log.Printf("approval: owner %s: token refused, no longer polling", id)
				t.drop(id, token)
				continue
			}
			log.Printf("approval: check owner %s: %v", id, err)
			continue
		}
		st := t.record(id, token, u)
		if st.Approved {
			log.Printf("approval: owner %s approved", id)
		}
	}
}

// drop removes id from the polling set unless it was re-tracked with a
// newer token while the lookup ran.
func (t *Tracker) drop(id, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.pending[id]; ok && e.token == token {
		delete(t.pending, id)
	}
}

func (t *Tracker) record(userID, token string, u model.User) State {
	st := State{UserID: userID, Approved: !u.NeedsApproval(), CheckedAt: t.now()}
	t.mu.Lock()
	defer t.mu.Unlock()
	if st.Approved {
		delete(t.pending, userID)
		t.settled[userID] = st
		return st
	}
	t.pending[userID] = &entry{token: token, state: st}
	return st
}

// Start schedules Poll on a cron runner and starts it.  The caller stops the
// returned runner on shutdown.
func (t *Tracker) Start(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		t.Poll(ctx)
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("approval: polling pending owners %s", schedule)
	return c, nil
}
