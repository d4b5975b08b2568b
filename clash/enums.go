package clash

import (
	"fmt"
	"strings"
)

// wireNames maps an enum's ordinal to its API string.
type wireNames []string

func (w wireNames) name(kind string, i int) string {
	if i < 0 || i >= len(w) {
		return fmt.Sprintf("%s(%d)", kind, i)
	}
	return w[i]
}

func (w wireNames) parse(kind, s string) (int, error) {
	for i, n := range w {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("clash: unknown %s %q", kind, s)
}

// WarFrequency is how often a clan declares war.
type WarFrequency int

const (
	WarFrequencyUnknown WarFrequency = iota
	WarFrequencyNever
	WarFrequencyLessThanOncePerWeek
	WarFrequencyOncePerWeek
	WarFrequencyMoreThanOncePerWeek
	WarFrequencyAlways
)

var warFrequencyNames = wireNames{"unknown", "never", "lessThanOncePerWeek", "oncePerWeek", "moreThanOncePerWeek", "always"}

func (f WarFrequency) WireValue() string { return warFrequencyNames.name("WarFrequency", int(f)) }
func (f WarFrequency) String() string    { return f.WireValue() }

func (f WarFrequency) MarshalText() ([]byte, error) { return []byte(f.WireValue()), nil }

func (f *WarFrequency) UnmarshalText(b []byte) error {
	i, err := warFrequencyNames.parse("war frequency", string(b))
	if err != nil {
		return err
	}
	*f = WarFrequency(i)
	return nil
}

// MembershipType is a clan's join policy.
type MembershipType int

const (
	MembershipUnknown MembershipType = iota
	MembershipOpen
	MembershipInviteOnly
	MembershipClosed
)

var membershipNames = wireNames{"unknown", "open", "inviteOnly", "closed"}

func (m MembershipType) WireValue() string { return membershipNames.name("MembershipType", int(m)) }
func (m MembershipType) String() string    { return m.WireValue() }

func (m MembershipType) MarshalText() ([]byte, error) { return []byte(m.WireValue()), nil }

func (m *MembershipType) UnmarshalText(b []byte) error {
	i, err := membershipNames.parse("membership type", string(b))
	if err != nil {
		return err
	}
	*m = MembershipType(i)
	return nil
}

// WarOutcome is the result of a finished war. The API omits the result of a tie.
type WarOutcome int

const (
	WarTie WarOutcome = iota
	WarWin
	WarLose
)

var warOutcomeNames = wireNames{"tie", "win", "lose"}

func (o WarOutcome) WireValue() string { return warOutcomeNames.name("WarOutcome", int(o)) }
func (o WarOutcome) String() string    { return o.WireValue() }

func (o WarOutcome) MarshalText() ([]byte, error) { return []byte(o.WireValue()), nil }

func (o *WarOutcome) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*o = WarTie
		return nil
	}
	i, err := warOutcomeNames.parse("war outcome", string(b))
	if err != nil {
		return err
	}
	*o = WarOutcome(i)
	return nil
}

// VillageTarget names the village an achievement or unit belongs to.
type VillageTarget int

const (
	VillageUnspecified VillageTarget = iota
	VillageHome
	VillageBuilderBase
)

var villageNames = wireNames{"", "home", "builderBase"}

func (v VillageTarget) WireValue() string { return villageNames.name("VillageTarget", int(v)) }
func (v VillageTarget) String() string    { return v.WireValue() }

func (v VillageTarget) MarshalText() ([]byte, error) { return []byte(v.WireValue()), nil }

func (v *VillageTarget) UnmarshalText(b []byte) error {
	i, err := villageNames.parse("village", string(b))
	if err != nil {
		return err
	}
	*v = VillageTarget(i)
	return nil
}
