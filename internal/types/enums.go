package types

// ComponentFamily selects which Bugzilla components a bulk query covers.
type ComponentFamily string

const (
	ComponentFamilyAny        ComponentFamily = ""
	ComponentFamilyStablereq  ComponentFamily = "stablereq"
	ComponentFamilyKeywordreq ComponentFamily = "keywordreq"
)

const (
	ComponentStabilization   = "Stabilization"
	ComponentKeywording      = "Keywording"
	ComponentVulnerabilities = "Vulnerabilities"
)

// StabilizationComponents are the components whose bugs carry arch
// testing requests.
var StabilizationComponents = []string{
	ComponentStabilization,
	ComponentKeywording,
	ComponentVulnerabilities,
}

const (
	StatusResolved = "RESOLVED"

	// ResolutionOpen is the Bugzilla resolution value of bugs that are
	// still open.
	ResolutionOpen = "---"
)

const (
	FlagSanityCheck       = "sanity-check"
	FlagStabilizationList = "stabilization-list"
	FlagGranted           = "+"
)

// ArchEmailDomain is appended to an architecture token to form the arch
// team alias, e.g. amd64@gentoo.org.
const ArchEmailDomain = "gentoo.org"
