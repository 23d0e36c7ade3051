package models

// MembershipStatus mirrors the messaging platform's chat-member status enum.
type MembershipStatus string

const (
	MembershipCreator       MembershipStatus = "creator"
	MembershipAdministrator MembershipStatus = "administrator"
	MembershipMember        MembershipStatus = "member"
	MembershipRestricted    MembershipStatus = "restricted"
	MembershipLeft          MembershipStatus = "left"
	MembershipKicked        MembershipStatus = "kicked"
	MembershipUnknown       MembershipStatus = "unknown"
)

// Satisfied reports whether the status counts as being subscribed.
// Restricted members are treated as not subscribed.
func (s MembershipStatus) Satisfied() bool {
	switch s {
	case MembershipCreator, MembershipAdministrator, MembershipMember:
		return true
	default:
		return false
	}
}
