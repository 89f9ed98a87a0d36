package enums

import "fmt"

// MembershipPlan is the user's subscription tier. Plus members skip the
// flat shipping fee at checkout.
type MembershipPlan string

const (
	MembershipPlanFree MembershipPlan = "free"
	MembershipPlanPlus MembershipPlan = "plus"
)

var validMembershipPlans = []MembershipPlan{
	MembershipPlanFree,
	MembershipPlanPlus,
}

// String implements fmt.Stringer.
func (m MembershipPlan) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MembershipPlan.
func (m MembershipPlan) IsValid() bool {
	for _, candidate := range validMembershipPlans {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsPlus reports whether the plan carries the privileged member tier.
func (m MembershipPlan) IsPlus() bool {
	return m == MembershipPlanPlus
}

// ParseMembershipPlan converts raw input into a MembershipPlan.
func ParseMembershipPlan(value string) (MembershipPlan, error) {
	for _, candidate := range validMembershipPlans {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership plan %q", value)
}
