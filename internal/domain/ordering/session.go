package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/shared"
)

// Session is the complete state of one ordering pass. It is a plain value:
// every operation returns a new Session and leaves the receiver untouched, so
// clients can hold it, send it back, and replay it.
type Session struct {
	ID             uuid.UUID         `json:"id"`
	DayType        catalog.DayType   `json:"day_type"`
	Inventory      map[string]Entry  `json:"inventory"`
	Orders         map[string]Entry  `json:"orders"`
	Notes          map[string]string `json:"notes"`
	DoNotRecommend map[string]bool   `json:"do_not_recommend,omitempty"`
	FinalNote      string            `json:"final_note,omitempty"`
	Applied        bool              `json:"applied"`
	StartedAt      time.Time         `json:"started_at"`
}

// NewSession starts an empty session for the day type
func NewSession(day catalog.DayType) (Session, error) {
	if !day.IsValid() {
		return Session{}, shared.Errorf(shared.ErrInvalidInput, "Unknown day type %q", day)
	}
	return Session{
		ID:        uuid.New(),
		DayType:   day,
		Inventory: map[string]Entry{},
		Orders:    map[string]Entry{},
		Notes:     map[string]string{},
		StartedAt: time.Now(),
	}, nil
}

// Clone returns a deep copy. Nil maps in the receiver come back empty.
func (s Session) Clone() Session {
	out := s
	out.Inventory = cloneMap(s.Inventory)
	out.Orders = cloneMap(s.Orders)
	out.Notes = cloneMap(s.Notes)
	if s.DoNotRecommend != nil {
		out.DoNotRecommend = cloneMap(s.DoNotRecommend)
	}
	return out
}

// WithDayType switches the day type. Inventory and order entries are cleared
// and the session is no longer applied.
func (s Session) WithDayType(day catalog.DayType) (Session, error) {
	if !day.IsValid() {
		return Session{}, shared.Errorf(shared.ErrInvalidInput, "Unknown day type %q", day)
	}
	out := s.Clone()
	out.DayType = day
	out.Inventory = map[string]Entry{}
	out.Orders = map[string]Entry{}
	out.Applied = false
	return out, nil
}

// WithInventory records stock on hand for an item. DoNotOrder forces the
// order to zero. Any inventory change clears the applied flag.
func (s Session) WithInventory(name string, entry Entry) Session {
	out := s.Clone()
	if entry.IsEmpty() {
		delete(out.Inventory, name)
	} else {
		out.Inventory[name] = entry
	}
	if entry.IsDoNotOrder() {
		out.Orders[name] = IntEntry(0)
	}
	out.Applied = false
	return out
}

// WithOrder sets an explicit order quantity, which reconciliation will keep.
// An empty entry removes the override. Negative numbers become zero, and an
// item whose inventory is DoNotOrder always orders zero.
func (s Session) WithOrder(name string, entry Entry) Session {
	out := s.Clone()
	if entry.IsEmpty() {
		delete(out.Orders, name)
		return out
	}
	out.Orders[name] = normalizeOrder(out.Inventory[name], entry)
	return out
}

// Normalize applies the order rules of WithInventory and WithOrder to a
// session built elsewhere, such as one decoded from a request: negative
// orders become zero and DoNotOrder stock orders zero. The applied flag is
// left as is.
func (s Session) Normalize() Session {
	out := s.Clone()
	for name, order := range out.Orders {
		if !order.IsEmpty() {
			out.Orders[name] = normalizeOrder(out.Inventory[name], order)
		}
	}
	for name, have := range out.Inventory {
		if have.IsDoNotOrder() {
			out.Orders[name] = IntEntry(0)
		}
	}
	return out
}

// WithNote attaches a note printed after the item's quantity. An empty note removes it.
func (s Session) WithNote(name, note string) Session {
	out := s.Clone()
	if note == "" {
		delete(out.Notes, name)
	} else {
		out.Notes[name] = note
	}
	return out
}

// WithFinalNote sets the note printed under the document date
func (s Session) WithFinalNote(note string) Session {
	out := s.Clone()
	out.FinalNote = note
	return out
}

// WithDoNotRecommend toggles the per-item "do not recommend" override. When on,
// the order is pinned to the current inventory value (zero when nothing or
// DoNotOrder was entered). When off, the order is cleared so the next
// reconciliation recomputes it.
func (s Session) WithDoNotRecommend(name string, on bool) Session {
	out := s.Clone()
	if out.DoNotRecommend == nil {
		out.DoNotRecommend = map[string]bool{}
	}
	if !on {
		delete(out.DoNotRecommend, name)
		delete(out.Orders, name)
		return out
	}
	out.DoNotRecommend[name] = true
	inv := out.Inventory[name]
	if inv.IsEmpty() || inv.IsDoNotOrder() {
		out.Orders[name] = IntEntry(0)
	} else {
		out.Orders[name] = inv
	}
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
