package debtors

import (
	"github.com/agentstation/bankrot/pkg/dates"
	"github.com/agentstation/bankrot/pkg/payload"
	"github.com/agentstation/bankrot/pkg/reconciler"
	"github.com/agentstation/bankrot/pkg/status"
)

// Key families shared by both debtor kinds.
var (
	caseEndDateKeys = []string{
		"caseEndDate", "endDate", "dateEnd", "finishDate", "completionDate", "dateFinish", "dateCompletion",
	}
	appointmentKeys = []string{
		"managerAppointmentDate", "appointmentDate", "arbitrManagerDate", "arbitrManagerSince",
	}
	managerNameKeys = []string{
		"arbitrationManagerName", "arbitrManagerFio", "arbitrationManagerFio", "managerName",
	}
)

func caseNumberChain(c *doc) reconciler.Chain {
	return reconciler.Of(
		c.Path("number"),
		c.Path("caseNumber"),
		c.Path("case", "number"),
	)
}

// procedureChain reads the procedure of a case. Status labels are accepted
// only when they read like a procedure name.
func procedureChain(c *doc) reconciler.Chain {
	return reconciler.Of(
		c.Path("procedure", "name"),
		c.Path("procedure", "description"),
		c.Path("procedure", "type"),
		c.Path("procedure"),
		c.Keys("procedureType", "procedureName", "type"),
		reconciler.When(c.Path("status", "name"), status.LooksLikeProcedure),
		reconciler.When(c.Path("status", "description"), status.LooksLikeProcedure),
	)
}

// caseStatusChain reads the state of a case: boolean flags first, then
// explicit labels, then status labels that read like a case state.
func caseStatusChain(flagged ...*doc) reconciler.Chain {
	var chain reconciler.Chain
	for _, d := range flagged {
		chain = append(chain, d.Flags())
	}
	if len(flagged) == 0 {
		return chain
	}
	c := flagged[len(flagged)-1]
	return append(chain,
		c.Path("caseStatus"),
		c.Path("statusName"),
		reconciler.When(c.Path("status", "description"), status.LooksLikeCaseStatus),
		reconciler.When(c.Path("status", "name"), status.LooksLikeCaseStatus),
	)
}

func managerNameChain(docs ...*doc) reconciler.Chain {
	var chain reconciler.Chain
	for _, d := range docs {
		chain = append(chain,
			d.Path("arbitrManagerFio"),
			d.Path("arbitrationManager", "name"),
			d.Path("arbitrManager", "name"),
			d.Path("manager", "name"),
		)
	}
	return chain
}

func regionChain(item *doc) reconciler.Chain {
	return reconciler.Of(
		item.Path("region", "name"),
		item.Path("region"),
	)
}

// date normalizes src, so an unparseable value falls through to the next
// source of the chain.
func date(src reconciler.Source) reconciler.Source {
	return reconciler.Map(src, dates.Normalize)
}

func lastCase(n payload.Node) payload.Node {
	return n.Get("lastLegalCase")
}

func firstCase(n payload.Node) payload.Node {
	return n.Get("legalCases").First()
}
