package ingest

import "gitlab.com/static-ip-db.net/internal/domain"

// RouteView describes one ingest endpoint
type RouteView struct {
	Name          string   `json:"name"`
	Path          string   `json:"path"`
	SpreadsheetID string   `json:"spreadsheetId"`
	SheetName     string   `json:"sheetName"`
	Columns       []string `json:"columns"`
}

// ListRoutesResponse represents a response to a list routes request
type ListRoutesResponse struct {
	Routes []RouteView `json:"routes"`
}

func newRouteView(r domain.Route) RouteView {
	return RouteView{
		Name:          r.Name,
		Path:          "/api/ingest/" + r.Name,
		SpreadsheetID: r.StoreID,
		SheetName:     r.SheetName,
		Columns:       r.Columns(),
	}
}
