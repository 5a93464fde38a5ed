package adapters

import (
	"context"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"getatoms/internal/ports"
	"getatoms/internal/shared"
)

// PortageArchAdapter asks portage for the configured ARCH.
type PortageArchAdapter struct {
	// Command is the portageq binary and its leading arguments.
	Command []string
}

func NewPortageArchAdapter() PortageArchAdapter {
	return PortageArchAdapter{Command: []string{"portageq", "envvar", "ARCH"}}
}

func (a PortageArchAdapter) CurrentArchitecture(ctx context.Context) (string, error) {
	if len(a.Command) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("portageq command is empty")
	}
	cmd := exec.CommandContext(ctx, a.Command[0], a.Command[1:]...)
	output, err := cmd.Output()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("could not determine architecture from portage, pass --arch").
			WithCause(shared.CommandError(output, err))
	}
	arch := strings.TrimSpace(string(output))
	if arch == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("portage reported an empty ARCH, pass --arch")
	}
	return arch, nil
}

// StaticArchAdapter always reports the same architecture.
type StaticArchAdapter struct {
	Arch string
}

func (a StaticArchAdapter) CurrentArchitecture(_ context.Context) (string, error) {
	arch := strings.TrimSpace(a.Arch)
	if arch == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("architecture is empty")
	}
	return arch, nil
}

var _ ports.ArchitecturePort = PortageArchAdapter{}
var _ ports.ArchitecturePort = StaticArchAdapter{}
