package kernel

import (
	"slices"
	"strings"

	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var ErrZoneIsNotConstructed = errs.NewValueIsRequiredError("zone must be created via NewZone")

// Zone is a coverage zone tag. Tags are compared after Unicode normalization,
// case folding and whitespace collapsing, so "Zona  Norte" and "zona norte"
// are the same zone.
type Zone struct { //nolint:recvcheck //using for validation
	tag   string
	guard guard.ConstructorGuard
}

// NewZone normalizes raw and returns the zone it names.
func NewZone(raw string) (Zone, error) {
	tag := normalizeZone(raw)
	if tag == "" {
		return Zone{}, errs.NewValueIsRequiredError("zone")
	}
	return Zone{tag: tag, guard: guard.NewConstructorGuard()}, nil
}

// NewZones builds a sorted, duplicate-free zone set.
func NewZones(raw []string) ([]Zone, error) {
	seen := make(map[string]struct{}, len(raw))
	zones := make([]Zone, 0, len(raw))
	for _, r := range raw {
		z, err := NewZone(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[z.tag]; ok {
			continue
		}
		seen[z.tag] = struct{}{}
		zones = append(zones, z)
	}
	slices.SortFunc(zones, func(a, b Zone) int { return strings.Compare(a.tag, b.tag) })
	return zones, nil
}

func (z Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

func (z Zone) String() string {
	return z.tag
}

func (z Zone) IsEqual(other Zone) bool {
	return z.tag == other.tag
}

// ZoneStrings returns the tags of zones in order.
func ZoneStrings(zones []Zone) []string {
	out := make([]string, len(zones))
	for i, z := range zones {
		out[i] = z.tag
	}
	return out
}

func normalizeZone(raw string) string {
	folded := cases.Fold().String(norm.NFC.String(raw))
	return strings.Join(strings.Fields(folded), " ")
}
