package types

import (
	"net/url"
	"strconv"
)

// BugQuery selects bugs either by id (ID or IDs) or by a composite
// filter. It is built once per run and never mutated afterwards.
type BugQuery struct {
	ID         int
	IDs        []int
	Resolution string
	Email      string
	Flag       string
	Components []string
}

// IncludeFields limits Bugzilla responses to the fields the pipeline reads.
var IncludeFields = []string{
	"id",
	"status",
	"resolution",
	"component",
	"assigned_to",
	"cc",
	"cf_stabilisation_atoms",
	"depends_on",
	"flags",
}

// ByID reports whether the query selects explicit bug ids.
func (q BugQuery) ByID() bool {
	return q.ID != 0 || len(q.IDs) > 0
}

// AllIDs returns the explicit ids selected by the query.
func (q BugQuery) AllIDs() []int {
	var ids []int
	if q.ID != 0 {
		ids = append(ids, q.ID)
	}
	return append(ids, q.IDs...)
}

// Params renders the query as Bugzilla REST search parameters.
func (q BugQuery) Params() url.Values {
	values := url.Values{}
	for _, id := range q.AllIDs() {
		values.Add("id", strconv.Itoa(id))
	}
	if q.Resolution != "" {
		values.Set("resolution", q.Resolution)
	}
	if q.Email != "" {
		values.Set("email1", q.Email)
		values.Set("emailassigned_to1", "1")
		values.Set("emailcc1", "1")
		values.Set("emailtype1", "equals")
	}
	if q.Flag != "" {
		values.Set("f1", "flagtypes.name")
		values.Set("o1", "equals")
		values.Set("v1", q.Flag)
	}
	for _, component := range q.Components {
		values.Add("component", component)
	}
	for _, field := range IncludeFields {
		values.Add("include_fields", field)
	}
	return values
}
