package domain

import "time"

const DefaultSheetName = "Sheet1"

// Route binds an ingest endpoint to one sheet of one backing store. Fields
// are read from the request body in order; the date and time cells follow.
type Route struct {
	Name      string   `json:"name" yaml:"name"`
	StoreID   string   `json:"spreadsheetId" yaml:"spreadsheet_id"`
	SheetName string   `json:"sheetName" yaml:"sheet_name"`
	Fields    []string `json:"fields" yaml:"fields"`
}

func (r Route) Columns() []string {
	cols := make([]string, 0, len(r.Fields)+2)
	cols = append(cols, r.Fields...)
	return append(cols, "date", "time")
}

// Row is one appended sheet row. Cells are strings, bools, json.Number or
// compact JSON text; the store decides how to render them.
type Row []interface{}

// Submission is a row before it is handed to a store.
type Submission struct {
	Route       Route
	Cells       Row
	SubmittedAt time.Time
}

// TeamRoute is the team/agent deployment.
func TeamRoute(storeID string) Route {
	return Route{
		Name:      "team",
		StoreID:   storeID,
		SheetName: DefaultSheetName,
		Fields:    []string{"teamName", "agentName", "ip", "adapter"},
	}
}

// DeviceRoute is the named-device deployment.
func DeviceRoute(storeID string) Route {
	return Route{
		Name:      "device",
		StoreID:   storeID,
		SheetName: DefaultSheetName,
		Fields:    []string{"name", "ip", "adapter"},
	}
}
