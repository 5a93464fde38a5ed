package app

import "getatoms/internal/types"

type GetAtomsRequest struct {
	// Arch overrides the architecture reported by the arch provider.
	Arch            string
	BugID           int
	AllBugs         bool
	Family          types.ComponentFamily
	SecurityOnly    bool
	NoDepends       bool
	SkipSanityCheck bool
}

type GetAtomsResult struct {
	Arch         string
	Processed    int
	Skipped      int
	AtomCount    int
	AtomsEmitted bool
}
