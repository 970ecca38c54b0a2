package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"gitlab.com/static-ip-db.net/internal/domain"
)

// DefaultTeamSpreadsheetID is the sheet the team deployment has always
// written to.
const DefaultTeamSpreadsheetID = "1pxWx6DCKDRUP3j9XY4Nq_witVqsxqvRt6cPmtuDlmBU"

var routeNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

type RoutesConfig struct {
	Routes []domain.Route
}

type routesFile struct {
	Routes []domain.Route `yaml:"routes"`
}

// NewRoutesConfig reads routes from INGEST_ROUTES_FILE when set, otherwise
// from INGEST_ROUTES and the per-route INGEST_<NAME>_* variables. Without
// INGEST_ROUTES only team is served, plus device once
// INGEST_DEVICE_SPREADSHEET_ID is set.
func NewRoutesConfig() (*RoutesConfig, error) {
	if path := getEnv("INGEST_ROUTES_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read routes file: %w", err)
		}
		return ParseRoutesYAML(data)
	}

	names := splitList(getEnv("INGEST_ROUTES", defaultRouteNames()))
	routes := make([]domain.Route, 0, len(names))
	for _, name := range names {
		routes = append(routes, routeFromEnv(strings.ToLower(name)))
	}
	return &RoutesConfig{Routes: routes}, nil
}

func defaultRouteNames() string {
	if getEnv("INGEST_DEVICE_SPREADSHEET_ID", "") != "" {
		return "team,device"
	}
	return "team"
}

func ParseRoutesYAML(data []byte) (*RoutesConfig, error) {
	var f routesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse routes file: %w", err)
	}
	for i := range f.Routes {
		if f.Routes[i].SheetName == "" {
			f.Routes[i].SheetName = domain.DefaultSheetName
		}
	}
	return &RoutesConfig{Routes: f.Routes}, nil
}

func routeFromEnv(name string) domain.Route {
	var route domain.Route
	switch name {
	case "team":
		route = domain.TeamRoute(DefaultTeamSpreadsheetID)
	case "device":
		route = domain.DeviceRoute("")
	default:
		route = domain.Route{Name: name, SheetName: domain.DefaultSheetName}
	}

	prefix := "INGEST_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_"
	route.StoreID = getEnv(prefix+"SPREADSHEET_ID", route.StoreID)
	route.SheetName = getEnv(prefix+"SHEET_NAME", route.SheetName)
	if fields := splitList(getEnv(prefix+"FIELDS", "")); len(fields) > 0 {
		route.Fields = fields
	}
	return route
}

func (c *RoutesConfig) Validate() error {
	if len(c.Routes) == 0 {
		return fmt.Errorf("at least one ingest route is required")
	}
	seen := make(map[string]bool, len(c.Routes))
	for _, r := range c.Routes {
		if !routeNamePattern.MatchString(r.Name) {
			return fmt.Errorf("invalid route name %q", r.Name)
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate route %q", r.Name)
		}
		seen[r.Name] = true
		if r.StoreID == "" {
			return fmt.Errorf("route %q: spreadsheet id is required", r.Name)
		}
		if r.SheetName == "" {
			return fmt.Errorf("route %q: sheet name is required", r.Name)
		}
		if len(r.Fields) == 0 {
			return fmt.Errorf("route %q: at least one field is required", r.Name)
		}
	}
	return nil
}
