package application

import "verifybot/internal/models"

type Outcome int

const (
	OutcomeBound Outcome = iota + 1
	OutcomeInvalidFormat
	OutcomeUnknownExternalID
	OutcomeLookupUnavailable
	OutcomeConflict
	OutcomeNotFound
	OutcomeForbidden
	OutcomeRevoked
	OutcomeAdded
	OutcomeRemoved
	OutcomeOK
)

var outcomeNames = map[Outcome]string{
	OutcomeBound:             "bound",
	OutcomeInvalidFormat:     "invalid_format",
	OutcomeUnknownExternalID: "unknown_external_id",
	OutcomeLookupUnavailable: "lookup_unavailable",
	OutcomeConflict:          "conflict",
	OutcomeNotFound:          "not_found",
	OutcomeForbidden:         "forbidden",
	OutcomeRevoked:           "revoked",
	OutcomeAdded:             "added",
	OutcomeRemoved:           "removed",
	OutcomeOK:                "ok",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// ClaimResult is the typed result of every claim and allow list operation.
// Only unexpected persistence failures are reported as errors instead.
type ClaimResult struct {
	Outcome    Outcome
	ExternalID string
	Binding    *models.IdentityBinding

	// Allow list membership observed after a successful bind. AllowListErr is
	// set when the check itself failed; the binding stands regardless.
	AllowListed    bool
	AllowListLabel string
	AllowListErr   error
}

func (r ClaimResult) Bound() bool {
	return r.Outcome == OutcomeBound
}

// PlayerReport is the admin view of an external identifier.
type PlayerReport struct {
	Outcome     Outcome
	ExternalID  string
	Player      *models.PlayerInfo
	Holder      *models.IdentityBinding
	AllowListed bool
}

type GrantOutcome struct {
	BaseRolesGranted     bool
	AllowListRoleGranted bool
	Reason               string
}

type VerificationResult struct {
	Claim    ClaimResult
	Grant    GrantOutcome
	GrantErr error
}
