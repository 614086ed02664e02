package registry

import (
	"sort"
	"sync"

	"github.com/studiolab/labkeeper/core/lab"
)

// Registry is the in-memory source of truth for lab state, keyed by course.
// All writes are whole-record replacements; last writer wins per course.
// It is mutated by three drivers (controller, status poller, health-check
// sweep), so every access goes through the lock.
type Registry struct {
	mu      sync.RWMutex
	records map[string]lab.Record
}

func New() *Registry {
	return &Registry{
		records: make(map[string]lab.Record),
	}
}

// Put replaces the record for its course.
func (r *Registry) Put(rec lab.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.CourseID] = rec
}

// Get returns the record for a course, if one exists.
func (r *Registry) Get(courseID string) (lab.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[courseID]
	return rec, ok
}

// List returns all records sorted by course ID.
func (r *Registry) List() []lab.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]lab.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CourseID < out[j].CourseID
	})
	return out
}

// Status returns the lifecycle status for a course, or StatusNotCreated if
// the course has no record.
func (r *Registry) Status(courseID string) lab.Status {
	rec, ok := r.Get(courseID)
	if !ok {
		return lab.StatusNotCreated
	}
	return rec.Status
}

// AccessURL returns the lab URL for a course. It is non-empty only while
// the lab is running.
func (r *Registry) AccessURL(courseID string) string {
	rec, ok := r.Get(courseID)
	if !ok {
		return ""
	}
	return rec.AccessURL
}

// IsReady reports whether the course's lab is running with a usable URL.
func (r *Registry) IsReady(courseID string) bool {
	rec, ok := r.Get(courseID)
	return ok && rec.Ready()
}

// Clear drops every record. Used on session cleanup.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[string]lab.Record)
}
