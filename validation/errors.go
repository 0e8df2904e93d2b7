package validation

import "fmt"

// MalformedRecordError reports a selection-table row that cannot be
// interpreted. The first malformed row aborts the whole load; partial
// results were never part of the workflow.
type MalformedRecordError struct {
	Field string
	Value string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: %s %q", e.Field, e.Value)
}
