package ports

// ReportPort receives result lines (header, atoms, separators) and
// diagnostic lines.
type ReportPort interface {
	Result(line string) error
	Diagnostic(line string) error
}
