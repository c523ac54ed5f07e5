package views

// ViewName identifies one of the top-level screens
type ViewName string

const (
	MainMenu     ViewName = "menu"
	EmployeeList ViewName = "empleados"
	FileStaging  ViewName = "data-upload"
)

// Navigation paths
const (
	MenuPath       = "/"
	EmployeesPath  = "/empleados"
	DataUploadPath = "/data-upload"
)

// Route binds a path to a view
type Route struct {
	Path  string
	View  ViewName
	Title string
}

// RouteTable is an immutable path to view mapping built once at startup
type RouteTable struct {
	routes []Route
	byPath map[string]Route
}

// NewRouteTable builds a table from the given routes. Later entries with a
// path already present are ignored.
func NewRouteTable(routes ...Route) RouteTable {
	t := RouteTable{byPath: make(map[string]Route, len(routes))}
	for _, r := range routes {
		if _, exists := t.byPath[r.Path]; exists {
			continue
		}
		t.routes = append(t.routes, r)
		t.byPath[r.Path] = r
	}
	return t
}

// DefaultRoutes returns the application's navigation surface
func DefaultRoutes() RouteTable {
	return NewRouteTable(
		Route{Path: MenuPath, View: MainMenu, Title: "Menú principal"},
		Route{Path: EmployeesPath, View: EmployeeList, Title: "Empleados"},
		Route{Path: DataUploadPath, View: FileStaging, Title: "Carga de datos"},
	)
}

// Lookup returns the route registered for path
func (t RouteTable) Lookup(path string) (Route, bool) {
	r, ok := t.byPath[path]
	return r, ok
}

// PathFor returns the path bound to view, or "" if none
func (t RouteTable) PathFor(view ViewName) string {
	for _, r := range t.routes {
		if r.View == view {
			return r.Path
		}
	}
	return ""
}

// All returns a copy of the routes in registration order
func (t RouteTable) All() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}
