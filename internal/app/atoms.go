package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"getatoms/internal/core"
	"getatoms/internal/shared"
	"getatoms/internal/types"
)

// GetAtoms fetches the requested bugs and reports, per bug, the atoms
// that apply to the target architecture. Per-bug problems are reported
// as diagnostics; only source and output failures are returned.
func (s Service) GetAtoms(ctx context.Context, req GetAtomsRequest) (GetAtomsResult, error) {
	if req.AllBugs == (req.BugID != 0) {
		return GetAtomsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exactly one of --all-bugs or --bug is required")
	}
	arch, err := s.resolveArch(ctx, req.Arch)
	if err != nil {
		return GetAtomsResult{}, err
	}
	assert.NotEmpty(ctx, arch, "architecture must be resolved")

	query, err := core.BuildBugQuery(core.QueryOptions{
		Arch:            arch,
		BugID:           req.BugID,
		Family:          req.Family,
		SecurityOnly:    req.SecurityOnly,
		SkipSanityCheck: req.SkipSanityCheck,
	})
	if err != nil {
		return GetAtomsResult{}, err
	}
	bugs, err := s.Bugs.Bugs(ctx, query)
	if err != nil {
		return GetAtomsResult{}, err
	}
	log.Ctx(ctx).Debug().Str("arch", arch).Int("bugs", len(bugs)).Msg("bugs fetched")

	deps, err := s.fetchDependencies(ctx, bugs)
	if err != nil {
		return GetAtomsResult{}, err
	}
	archEmail := types.ArchEmail(arch)
	attachments, err := s.fetchAttachments(ctx, bugs, archEmail)
	if err != nil {
		return GetAtomsResult{}, err
	}

	result := GetAtomsResult{Arch: arch}
	for _, bug := range bugs {
		count, processed, err := s.processBug(ctx, bug, attachments[bug.ID], deps, arch, req.NoDepends)
		if err != nil {
			return result, err
		}
		if !processed {
			result.Skipped++
			continue
		}
		result.Processed++
		result.AtomCount += count
		if count > 0 {
			result.AtomsEmitted = true
		}
	}
	log.Ctx(ctx).Debug().
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Int("atoms", result.AtomCount).
		Msg("atoms collected")
	return result, nil
}

func (s Service) resolveArch(ctx context.Context, override string) (string, error) {
	if arch := strings.TrimSpace(override); arch != "" {
		return arch, nil
	}
	if s.Arch == nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no architecture provider configured, pass --arch")
	}
	arch, err := s.Arch.CurrentArchitecture(ctx)
	if err != nil {
		return "", err
	}
	arch = strings.TrimSpace(arch)
	if arch == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("architecture provider returned an empty architecture, pass --arch")
	}
	return arch, nil
}

// fetchDependencies looks up every blocker of bugs in a single query.
func (s Service) fetchDependencies(ctx context.Context, bugs []types.Bug) (map[int]types.Bug, error) {
	deps := map[int]types.Bug{}
	ids := core.DependencyIDs(bugs)
	// An empty id list would match every bug in the tracker.
	if len(ids) == 0 {
		return deps, nil
	}
	fetched, err := s.Bugs.Bugs(ctx, types.BugQuery{IDs: ids})
	if err != nil {
		return nil, err
	}
	for _, bug := range fetched {
		deps[bug.ID] = bug
	}
	log.Ctx(ctx).Debug().Int("requested", len(ids)).Int("fetched", len(deps)).Msg("dependency bugs fetched")
	return deps, nil
}

// fetchAttachments loads attachments only for bugs that will be
// processed and have no atoms field to read from.
func (s Service) fetchAttachments(ctx context.Context, bugs []types.Bug, archEmail string) (map[int][]types.Attachment, error) {
	var ids []int
	for _, bug := range bugs {
		if bug.Atoms == "" && bug.HasCC(archEmail) {
			ids = append(ids, bug.ID)
		}
	}
	if len(ids) == 0 {
		return map[int][]types.Attachment{}, nil
	}
	return s.Bugs.Attachments(ctx, ids)
}

// processBug reports one bug and returns the number of atoms emitted and
// whether the bug passed the CC, atoms and dependency checks.
func (s Service) processBug(ctx context.Context, bug types.Bug, attachments []types.Attachment, deps map[int]types.Bug, arch string, noDepends bool) (int, bool, error) {
	archEmail := types.ArchEmail(arch)
	if !bug.HasCC(archEmail) {
		return 0, false, s.skip(shared.SkipLine("%s is not in CC for bug #%d, skipping...", arch, bug.ID))
	}
	atoms := core.ExtractAtoms(bug, attachments)
	if atoms == "" {
		return 0, false, s.skip(shared.SkipLine("No atoms found in bug #%d, skipping...", bug.ID))
	}
	verdict := core.CheckDependencies(bug, deps, archEmail)
	if !core.IsReady(verdict, noDepends) {
		return 0, false, s.skip(shared.SkipLine("bug #%d depends on other unresolved bugs, skipping...", bug.ID))
	}
	if verdict.HasUnresolved() {
		log.Ctx(ctx).Debug().Int("bug", bug.ID).Ints("unresolved", verdict.Unresolved).Msg("processing bug with open blockers")
		if err := s.Report.Diagnostic(shared.SkipLine("bug #%d depends on other unresolved bugs, processing anyway", bug.ID)); err != nil {
			return 0, false, err
		}
	}

	if err := s.Report.Result(shared.SkipLine("bug #%d", bug.ID)); err != nil {
		return 0, false, err
	}
	matched := core.ParseAtoms(atoms, arch)
	for _, atom := range matched {
		if err := s.Report.Result(atom); err != nil {
			return 0, false, err
		}
	}
	if err := s.Report.Result(""); err != nil {
		return 0, false, err
	}
	return len(matched), true, nil
}

func (s Service) skip(line string) error {
	if err := s.Report.Diagnostic(line); err != nil {
		return err
	}
	return s.Report.Diagnostic("")
}
