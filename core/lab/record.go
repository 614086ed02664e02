package lab

import (
	"time"
)

// Status is the lifecycle state of a lab container as tracked by the client.
type Status string

const (
	StatusNotCreated Status = "not_created"
	StatusBuilding   Status = "building"
	StatusRunning    Status = "running"
	StatusPaused     Status = "paused"
	StatusError      Status = "error"
)

// Terminal reports whether a status ends a build watch. A building lab keeps
// getting polled until it reaches one of these.
func (s Status) Terminal() bool {
	return s == StatusRunning || s == StatusError
}

// Record is the client's view of one lab container, keyed by course.
// AccessURL is non-empty if and only if Status is StatusRunning; while a lab
// is paused the URL is stashed in LastAccessURL because resume responses
// carry no body.
type Record struct {
	CourseID      string    `json:"course_id"`
	LabID         string    `json:"lab_id,omitempty"`
	Status        Status    `json:"status"`
	AccessURL     string    `json:"access_url,omitempty"`
	LastAccessURL string    `json:"last_access_url,omitempty"`
	LastSyncedAt  time.Time `json:"last_synced_at,omitempty"`
}

// Ready reports whether the lab can be handed to the user right now.
func (r Record) Ready() bool {
	return r.Status == StatusRunning && r.AccessURL != ""
}

// Paused returns a copy of the record transitioned to StatusPaused, moving
// the access URL into LastAccessURL so a later resume can restore it.
func (r Record) Paused() Record {
	next := r
	next.Status = StatusPaused
	if r.AccessURL != "" {
		next.LastAccessURL = r.AccessURL
	}
	next.AccessURL = ""
	return next
}

// Resumed returns a copy of the record transitioned back to StatusRunning
// with the stashed access URL restored.
func (r Record) Resumed() Record {
	next := r
	next.Status = StatusRunning
	if next.AccessURL == "" {
		next.AccessURL = next.LastAccessURL
	}
	return next
}

// InheritURL carries a previously known access URL into a server-reported
// record that arrived without one. Health-check sweeps use this so that a
// paused lab does not forget the URL it had while running.
func (r Record) InheritURL(prev Record) Record {
	next := r
	if next.LastAccessURL == "" {
		if prev.AccessURL != "" {
			next.LastAccessURL = prev.AccessURL
		} else {
			next.LastAccessURL = prev.LastAccessURL
		}
	}
	return next
}
