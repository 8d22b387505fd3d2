package domain

import "fmt"

// Urgency is the pluggable priority strategy attached to incidents.
// Implementations are pure: no side effects, no failure modes.
type Urgency interface {
	Priority() int
	Name() string
}

// UrgencyCritical is the maximum priority strategy, for outages that need
// immediate attention.
type UrgencyCritical struct{}

func (UrgencyCritical) Priority() int { return 10 }
func (UrgencyCritical) Name() string  { return "critical" }

// UrgencyImportant covers significant degradations of a service.
type UrgencyImportant struct{}

func (UrgencyImportant) Priority() int { return 7 }
func (UrgencyImportant) Name() string  { return "important" }

// UrgencyMinor covers issues that do not meaningfully affect the service.
type UrgencyMinor struct{}

func (UrgencyMinor) Priority() int { return 3 }
func (UrgencyMinor) Name() string  { return "minor" }

// ParseUrgency resolves an urgency strategy by its wire name.
func ParseUrgency(name string) (Urgency, error) {
	switch name {
	case "critical":
		return UrgencyCritical{}, nil
	case "important":
		return UrgencyImportant{}, nil
	case "minor":
		return UrgencyMinor{}, nil
	default:
		return nil, fmt.Errorf("unknown urgency: %s", name)
	}
}
