package ordering

import (
	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/ordering"
)

// StartSessionRequest starts a session for a day type
type StartSessionRequest struct {
	DayType string `json:"day_type" binding:"required"`
}

// SessionRequest carries the client's current session
type SessionRequest struct {
	Session ordering.Session `json:"session"`
}

// ChangeDayTypeRequest switches the session's day type
type ChangeDayTypeRequest struct {
	Session ordering.Session `json:"session"`
	DayType string           `json:"day_type" binding:"required"`
}

// EntryRequest sets an inventory or order entry for one item
type EntryRequest struct {
	Session ordering.Session `json:"session"`
	Name    string           `json:"name" binding:"required"`
	Value   ordering.Entry   `json:"value"`
}

// NoteRequest sets an item note
type NoteRequest struct {
	Session ordering.Session `json:"session"`
	Name    string           `json:"name" binding:"required"`
	Note    string           `json:"note" binding:"max=500"`
}

// FinalNoteRequest sets the document note
type FinalNoteRequest struct {
	Session ordering.Session `json:"session"`
	Note    string           `json:"note" binding:"max=2000"`
}

// DoNotRecommendRequest toggles the per-item do-not-recommend flag
type DoNotRecommendRequest struct {
	Session ordering.Session `json:"session"`
	Name    string           `json:"name" binding:"required"`
	On      bool             `json:"on"`
}

// SessionRow is one catalog item as shown on the ordering screen
type SessionRow struct {
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	CategoryName   string         `json:"category_name"`
	Recommended    int            `json:"recommended"`
	Inventory      ordering.Entry `json:"inventory"`
	Order          ordering.Entry `json:"order"`
	Note           string         `json:"note,omitempty"`
	DoNotRecommend bool           `json:"do_not_recommend,omitempty"`
}

// SessionResponse is the new session plus the rows to display
type SessionResponse struct {
	Session      ordering.Session `json:"session"`
	DayTypeLabel string           `json:"day_type_label"`
	Rows         []SessionRow     `json:"rows"`
}

// NewSessionResponse lays out s against the catalog
func NewSessionResponse(c catalog.Catalog, s ordering.Session) SessionResponse {
	rows := make([]SessionRow, len(c))
	for i, item := range c {
		rows[i] = SessionRow{
			Name:           item.Name,
			Category:       item.Category.String(),
			CategoryName:   item.Category.DisplayName(),
			Recommended:    item.RecommendedFor(s.DayType),
			Inventory:      s.Inventory[item.Name],
			Order:          s.Orders[item.Name],
			Note:           s.Notes[item.Name],
			DoNotRecommend: s.DoNotRecommend[item.Name],
		}
	}
	return SessionResponse{
		Session:      s,
		DayTypeLabel: s.DayType.Label(),
		Rows:         rows,
	}
}

// Artifact is a generated export file
type Artifact struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	Pages       int    `json:"pages,omitempty"`
	ArchiveKey  string `json:"archive_key,omitempty"`
	ArchiveURL  string `json:"archive_url,omitempty"`
}
