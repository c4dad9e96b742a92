package model

import "time"

// Subscription roles accepted by the waitlist form.
const (
	RoleClient    = "client"
	RoleTherapist = "therapist"
	RolePartner   = "partner"
)

// Roles lists the valid subscription roles in display order.
var Roles = []string{RoleClient, RoleTherapist, RolePartner}

// EmailSubscription is a waitlist / product-update subscription keyed by email.
// The first submission for an address wins; later submissions leave it untouched.
type EmailSubscription struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"fullName,omitempty"`
	Role             string     `json:"role,omitempty"`
	IPHash           string     `json:"-"`
	ConsentGiven     bool       `json:"consentGiven"`
	ConsentTimestamp *time.Time `json:"consentTimestamp,omitempty"` // set iff ConsentGiven
	CreatedAt        time.Time  `json:"createdAt"`
}
