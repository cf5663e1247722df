package dashboard

import "strings"

// Router maps a panel key to its Panel. Unknown keys select the dashboard.
type Router struct {
	panels map[PanelKey]Panel
	order  []PanelKey
}

// NewRouter creates a Router with every built-in panel registered.
func NewRouter() *Router {
	r := &Router{panels: map[PanelKey]Panel{}}
	r.Register(dashboardPanel(r.Keys))
	for _, p := range analysisPanels() {
		r.Register(p)
	}
	for _, p := range browsePanels() {
		r.Register(p)
	}
	return r
}

// Register adds p, replacing any panel with the same key.
func (r *Router) Register(p Panel) {
	if _, exists := r.panels[p.Key()]; !exists {
		r.order = append(r.order, p.Key())
	}
	r.panels[p.Key()] = p
}

// Lookup returns the panel registered for key, ignoring case and surrounding space.
func (r *Router) Lookup(key string) (Panel, bool) {
	p, ok := r.panels[PanelKey(strings.ToLower(strings.TrimSpace(key)))]
	return p, ok
}

// Select returns the panel for key, or the dashboard panel when key is unknown.
func (r *Router) Select(key string) Panel {
	if p, ok := r.Lookup(key); ok {
		return p
	}
	return r.panels[KeyDashboard]
}

// Keys lists the registered keys in registration order.
func (r *Router) Keys() []PanelKey {
	return append([]PanelKey(nil), r.order...)
}
