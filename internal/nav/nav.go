// Package nav holds the navigation messages shared by the client's views.
package nav

// Route identifies the page currently on screen.
type Route int

const (
	RouteLanding Route = iota
	RouteDetail
)

// String returns a human-readable route name.
func (r Route) String() string {
	switch r {
	case RouteLanding:
		return "landing"
	case RouteDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// OpenRecipeMsg asks the shell to show the detail page for a recipe.
type OpenRecipeMsg struct {
	ID int
}

// BackMsg asks the shell to return to the landing page.
type BackMsg struct{}
