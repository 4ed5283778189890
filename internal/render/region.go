package render

import (
	"html/template"
	"sync"
)

// Region is a display area whose content is replaced wholesale on each render.
type Region struct {
	mu      sync.RWMutex
	html    template.HTML
	version uint64
}

// Replace swaps the region content.
func (r *Region) Replace(html template.HTML) {
	r.mu.Lock()
	r.html = html
	r.version++
	r.mu.Unlock()
}

// HTML returns the current content.
func (r *Region) HTML() template.HTML {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.html
}

// Version counts replacements; clients poll it to detect changes.
func (r *Region) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
