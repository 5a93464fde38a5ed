package ports

import "context"

// ArchitecturePort supplies the default target architecture when none is
// given explicitly.
type ArchitecturePort interface {
	CurrentArchitecture(ctx context.Context) (string, error)
}
