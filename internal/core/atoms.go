package core

import (
	"slices"
	"sort"
	"strings"
)

// NormalizeAtom pins atom to an exact version by prefixing "=" once.
func NormalizeAtom(atom string) string {
	if strings.HasPrefix(atom, "=") {
		return atom
	}
	return "=" + atom
}

// ParseAtoms parses an atom list of "atom [arch...]" lines and returns the
// atoms that apply to arch, deduplicated and sorted. A line without an
// arch list applies to every arch; "~arch" matches arch as well.
func ParseAtoms(blob string, arch string) []string {
	set := map[string]struct{}{}
	for _, line := range splitLines(blob) {
		if line == "" {
			continue
		}
		token, arches, _ := strings.Cut(line, " ")
		if !matchesArch(arches, arch) {
			continue
		}
		set[NormalizeAtom(token)] = struct{}{}
	}
	atoms := make([]string, 0, len(set))
	for atom := range set {
		atoms = append(atoms, atom)
	}
	sort.Strings(atoms)
	return atoms
}

func matchesArch(arches string, arch string) bool {
	if arches == "" {
		return true
	}
	list := strings.Split(arches, " ")
	return slices.Contains(list, arch) || slices.Contains(list, "~"+arch)
}

func splitLines(blob string) []string {
	blob = strings.ReplaceAll(blob, "\r\n", "\n")
	return strings.Split(blob, "\n")
}
