package lab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/qri-io/jsonschema"
)

// recordSchema validates lab-manager responses before they are unmarshaled,
// so a malformed payload fails at the API boundary instead of leaking a
// half-empty record into the state machine.
var recordSchema = []byte(`{
	"type": "object",
	"required": ["lab_id", "status"],
	"properties": {
		"lab_id": {
			"type": "string",
			"minLength": 1
		},
		"course_id": {
			"type": "string"
		},
		"status": {
			"type": "string",
			"enum": ["building", "running", "paused", "error"]
		},
		"access_url": {
			"type": "string"
		}
	}
}`)

var (
	schemaOnce   sync.Once
	parsedSchema *jsonschema.Schema
	schemaErr    error
)

func keyError(errs []jsonschema.KeyError) error {
	s := strings.Builder{}
	for _, e := range errs {
		s.WriteString(fmt.Sprintf("%s\n", e.Error()))
	}
	return errors.New(s.String())
}

// DecodeRecord validates and unmarshals a lab-manager JSON response into a
// Record, stamping LastSyncedAt. It enforces the invariant that a running
// lab always carries an access URL.
func DecodeRecord(data []byte) (Record, error) {
	schemaOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(recordSchema, rs); err != nil {
			schemaErr = fmt.Errorf("invalid lab record schema: %s", err)
			return
		}
		parsedSchema = rs
	})
	if schemaErr != nil {
		return Record{}, schemaErr
	}

	keyErrs, err := parsedSchema.ValidateBytes(context.Background(), data)
	if err != nil {
		return Record{}, fmt.Errorf("error validating lab record: %s", err)
	}
	if len(keyErrs) != 0 {
		return Record{}, keyError(keyErrs)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	if rec.Status == StatusRunning && rec.AccessURL == "" {
		return Record{}, fmt.Errorf("lab %s reported running without an access URL", rec.LabID)
	}
	if rec.Status != StatusRunning && rec.AccessURL != "" {
		// Stash rather than surface a URL the invariant says must be absent.
		rec.LastAccessURL = rec.AccessURL
		rec.AccessURL = ""
	}
	rec.LastSyncedAt = time.Now()
	return rec, nil
}
