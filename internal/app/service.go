package app

import (
	"strings"

	"getatoms/internal/adapters"
	"getatoms/internal/ports"
)

type Service struct {
	Bugs   ports.BugSourcePort
	Arch   ports.ArchitecturePort
	Report ports.ReportPort
}

type ServiceConfig struct {
	// Arch pins the target architecture instead of asking portage.
	Arch        string
	BugzillaURL string
	APIKey      string
	TimeoutSec  int
	BugsFile    string
}

// NewService wires the Bugzilla REST source, or the YAML snapshot source
// when a bugs file is configured. Portage provides the architecture
// unless one is pinned.
func NewService(cfg ServiceConfig, report ports.ReportPort) Service {
	var bugs ports.BugSourcePort
	if cfg.BugsFile != "" {
		bugs = adapters.NewBugFileAdapter(cfg.BugsFile)
	} else {
		bugs = adapters.NewBugzillaRESTAdapter(adapters.BugzillaConfig{
			BaseURL:    cfg.BugzillaURL,
			APIKey:     cfg.APIKey,
			TimeoutSec: cfg.TimeoutSec,
		})
	}
	var arch ports.ArchitecturePort = adapters.NewPortageArchAdapter()
	if strings.TrimSpace(cfg.Arch) != "" {
		arch = adapters.StaticArchAdapter{Arch: cfg.Arch}
	}
	return Service{
		Bugs:   bugs,
		Arch:   arch,
		Report: report,
	}
}
