package flow

import "time"

// RemovalPhase is the visual state of an album being deleted locally.
type RemovalPhase string

const (
	PhaseIdle       RemovalPhase = ""
	PhaseConfirming RemovalPhase = "confirming"
	PhaseRemoving   RemovalPhase = "removing"
)

const MsgConfirmDelete = "Are you sure to delete this album?"

type albumKey struct {
	userID  int
	albumID int
}

type removal struct {
	phase     RemovalPhase
	startedAt time.Time
}
