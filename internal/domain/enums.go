package domain

type SchedulingMode string

const (
	SchedulingManual    SchedulingMode = "manual"
	SchedulingAutomatic SchedulingMode = "automatic"
)

// ValidSchedulingModes is the canonical set of accepted scheduling mode strings.
var ValidSchedulingModes = map[string]bool{
	"manual": true, "automatic": true,
}
