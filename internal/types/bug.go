package types

import "slices"

type Flag struct {
	Name   string `yaml:"name"`
	Status string `yaml:"status"`
}

type Bug struct {
	ID         int      `yaml:"id"`
	Status     string   `yaml:"status"`
	Resolution string   `yaml:"resolution"`
	Component  string   `yaml:"component"`
	AssignedTo string   `yaml:"assigned_to"`
	CC         []string `yaml:"cc"`
	Atoms      string   `yaml:"atoms"`
	DependsOn  []int    `yaml:"depends_on"`
	Flags      []Flag   `yaml:"flags"`
}

// HasCC reports whether email is on the bug's CC list.
func (b Bug) HasCC(email string) bool {
	return slices.Contains(b.CC, email)
}

// HasFlag reports whether the bug carries flag name with the given status.
func (b Bug) HasFlag(name string, status string) bool {
	return hasFlag(b.Flags, name, status)
}

type Attachment struct {
	ID         int    `yaml:"id"`
	BugID      int    `yaml:"bug_id"`
	IsObsolete bool   `yaml:"is_obsolete"`
	Flags      []Flag `yaml:"flags"`
	Data       string `yaml:"data"`
}

func (a Attachment) HasFlag(name string, status string) bool {
	return hasFlag(a.Flags, name, status)
}

func hasFlag(flags []Flag, name string, status string) bool {
	for _, flag := range flags {
		if flag.Name == name && flag.Status == status {
			return true
		}
	}
	return false
}

// ArchEmail returns the arch team alias for arch.
func ArchEmail(arch string) string {
	return arch + "@" + ArchEmailDomain
}
