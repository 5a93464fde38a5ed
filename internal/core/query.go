package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"getatoms/internal/types"
)

// QueryOptions are the named options a bug query is built from.
type QueryOptions struct {
	Arch            string
	BugID           int
	Family          types.ComponentFamily
	SecurityOnly    bool
	SkipSanityCheck bool
}

// BuildBugQuery turns opts into the Bugzilla filter. A bug id wins over
// every other option.
func BuildBugQuery(opts QueryOptions) (types.BugQuery, error) {
	if opts.BugID < 0 {
		return types.BugQuery{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bug id must be positive")
	}
	if opts.BugID > 0 {
		return types.BugQuery{ID: opts.BugID}, nil
	}
	arch := strings.TrimSpace(opts.Arch)
	if arch == "" {
		return types.BugQuery{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("architecture is required to query bugs")
	}
	components, err := componentsFor(opts.Family, opts.SecurityOnly)
	if err != nil {
		return types.BugQuery{}, err
	}
	query := types.BugQuery{
		Resolution: types.ResolutionOpen,
		Email:      types.ArchEmail(arch),
		Components: components,
	}
	if !opts.SkipSanityCheck {
		query.Flag = types.FlagSanityCheck + types.FlagGranted
	}
	return query, nil
}

func componentsFor(family types.ComponentFamily, securityOnly bool) ([]string, error) {
	if securityOnly {
		if family == types.ComponentFamilyKeywordreq {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("--security cannot be combined with --keywordreq")
		}
		return []string{types.ComponentVulnerabilities}, nil
	}
	switch family {
	case types.ComponentFamilyKeywordreq:
		return []string{types.ComponentKeywording}, nil
	case types.ComponentFamilyStablereq:
		return []string{types.ComponentStabilization, types.ComponentVulnerabilities}, nil
	case types.ComponentFamilyAny:
		return append([]string(nil), types.StabilizationComponents...), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown component family: " + string(family))
	}
}
