package journal

import (
	"fmt"
	"strings"

	"trade-journal/internal/models"
)

// Query selects one page of one tab of the journal.
type Query struct {
	// Status is ACTIVE, CLOSED, or empty for every trade.
	Status   models.TradeStatus
	Search   string
	Page     int // 1-based
	PageSize int
	// Offline reads the local snapshot instead of the backend.
	Offline bool
}

// Page is one page of trade views.
type Page struct {
	Items      []models.TradeView `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	Total      int                `json:"total"`
	TotalPages int                `json:"totalPages"`
	Offline    bool               `json:"offline"`
}

// ParseStatus maps a tab name to a status filter. "all" and "" select every
// trade.
func ParseStatus(tab string) (models.TradeStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(tab)) {
	case "", "ALL":
		return "", nil
	case string(models.StatusActive):
		return models.StatusActive, nil
	case string(models.StatusClosed):
		return models.StatusClosed, nil
	}
	return "", fmt.Errorf("unknown status %q (want active, closed or all)", tab)
}

// FilterByStatus keeps views in the given tab, preserving order.
func FilterByStatus(views []models.TradeView, status models.TradeStatus) []models.TradeView {
	out := make([]models.TradeView, 0, len(views))
	for _, v := range views {
		if status == "" || strings.EqualFold(string(v.Status), string(status)) {
			out = append(out, v)
		}
	}
	return out
}

// Search keeps views whose instrument, setup, strategy or notes contain q,
// ignoring case.
func Search(views []models.TradeView, q string) []models.TradeView {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return views
	}

	out := make([]models.TradeView, 0, len(views))
	for _, v := range views {
		fields := []string{v.Instrument.Name, v.Setup, v.Strategy, v.Notes}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// Paginate cuts page (1-based) out of views. A page past the end is empty.
func Paginate(views []models.TradeView, page, size int) Page {
	if size < 1 {
		size = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(views)
	pages := total / size
	if total%size != 0 || pages == 0 {
		pages++
	}

	p := Page{
		Items:      []models.TradeView{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
	}

	if page > pages {
		return p
	}
	start := (page - 1) * size
	if start >= total {
		return p
	}
	end := start + size
	if end > total {
		end = total
	}
	p.Items = views[start:end]
	return p
}
