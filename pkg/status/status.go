// Package status infers insolvency case status from heterogeneous upstream
// flags and classifies free-text status labels.
package status

import (
	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/payload"
)

// Case status labels written into records.
const (
	Unknown  = ""
	Active   = constants.StatusActive
	Finished = constants.StatusFinished
)

// ActiveKeys are the flag names that mark a case as open.
var ActiveKeys = []string{
	"isActive", "active",
	"isActiveLegalCase", "activeLegalCase",
	"isActiveCase", "activeCase",
}

// FinishedKeys are the flag names that mark a case as closed.
var FinishedKeys = []string{
	"isFinished", "finished",
	"isEnded", "ended",
	"isClosed", "closed",
	"isCompleted", "completed",
	"isTerminated", "terminated",
}

// FromFlags derives a case status from flags found anywhere in node.
//
// A true finished flag wins over any active flag. Otherwise an active flag
// decides: true is Active, false is Finished. With neither flag present the
// status is Unknown and the caller applies its own default.
func FromFlags(node payload.Node) string {
	if node.Missing() {
		return Unknown
	}

	if finished, ok := node.FindDeepBool(FinishedKeys...); ok && finished {
		return Finished
	}

	active, ok := node.FindDeepBool(ActiveKeys...)
	switch {
	case !ok:
		return Unknown
	case active:
		return Active
	default:
		return Finished
	}
}
