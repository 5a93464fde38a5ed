package adapters

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"getatoms/internal/ports"
	"getatoms/internal/types"
)

// BugFileSnapshot is the on-disk layout read by BugFileAdapter.
type BugFileSnapshot struct {
	Bugs        []types.Bug                `yaml:"bugs"`
	Attachments map[int][]types.Attachment `yaml:"attachments"`
}

// BugFileAdapter serves bugs from a YAML snapshot and evaluates queries
// locally with the same semantics as the Bugzilla search.
type BugFileAdapter struct {
	Path string
}

func NewBugFileAdapter(path string) BugFileAdapter {
	return BugFileAdapter{Path: path}
}

func (a BugFileAdapter) Bugs(ctx context.Context, query types.BugQuery) ([]types.Bug, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snapshot, err := a.load()
	if err != nil {
		return nil, err
	}
	bugs := []types.Bug{}
	for _, bug := range snapshot.Bugs {
		if matchesQuery(bug, query) {
			bugs = append(bugs, bug)
		}
	}
	return bugs, nil
}

func (a BugFileAdapter) Attachments(ctx context.Context, bugIDs []int) (map[int][]types.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := map[int][]types.Attachment{}
	if len(bugIDs) == 0 {
		return out, nil
	}
	snapshot, err := a.load()
	if err != nil {
		return nil, err
	}
	for _, id := range bugIDs {
		list := snapshot.Attachments[id]
		attachments := make([]types.Attachment, 0, len(list))
		for _, attachment := range list {
			if attachment.BugID == 0 {
				attachment.BugID = id
			}
			attachments = append(attachments, attachment)
		}
		out[id] = attachments
	}
	return out, nil
}

func (a BugFileAdapter) load() (BugFileSnapshot, error) {
	if strings.TrimSpace(a.Path) == "" {
		return BugFileSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bugs file path is empty")
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return BugFileSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read bugs file").
			WithCause(err)
	}
	var snapshot BugFileSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return BugFileSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse bugs file yaml").
			WithCause(err)
	}
	return snapshot, nil
}

func matchesQuery(bug types.Bug, query types.BugQuery) bool {
	if query.ByID() {
		return slices.Contains(query.AllIDs(), bug.ID)
	}
	if query.Resolution == types.ResolutionOpen && bug.Resolution != "" && bug.Resolution != types.ResolutionOpen {
		return false
	}
	if query.Email != "" && bug.AssignedTo != query.Email && !bug.HasCC(query.Email) {
		return false
	}
	if len(query.Components) > 0 && !slices.Contains(query.Components, bug.Component) {
		return false
	}
	if query.Flag != "" {
		name, status := splitFlag(query.Flag)
		if !bug.HasFlag(name, status) {
			return false
		}
	}
	return true
}

// splitFlag splits a flagtypes.name search value such as "sanity-check+"
// into its name and status.
func splitFlag(value string) (string, string) {
	if value == "" {
		return "", ""
	}
	last := value[len(value)-1:]
	switch last {
	case "+", "-", "?":
		return value[:len(value)-1], last
	}
	return value, ""
}

var _ ports.BugSourcePort = BugFileAdapter{}
