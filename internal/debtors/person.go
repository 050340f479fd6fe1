package debtors

import (
	"context"
	"strings"

	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/logging"
	"github.com/agentstation/bankrot/pkg/payload"
	"github.com/agentstation/bankrot/pkg/reconciler"
	"github.com/agentstation/bankrot/pkg/records"
	"github.com/agentstation/bankrot/pkg/region"

	"github.com/agentstation/bankrot/internal/sources/fedresurs"
)

// Entrepreneur status labels used when the registry gives only a flag.
const (
	EntrepreneurActive     = "Действует"
	EntrepreneurTerminated = "Прекратил деятельность"
)

// PersonBuilder assembles natural person records. Unknown fields stay blank;
// persons get no placeholders.
type PersonBuilder struct {
	fetcher Fetcher
	merger  reconciler.Reconciler
}

// NewPersonBuilder creates a builder reading cards through f.
func NewPersonBuilder(f Fetcher, r reconciler.Reconciler) *PersonBuilder {
	return &PersonBuilder{fetcher: f, merger: r}
}

// Build assembles the record for one list item. It reports false, with an
// empty record, when the item carries no guid.
func (b *PersonBuilder) Build(ctx context.Context, item payload.Node) (records.Person, bool) {
	var rec records.Person
	ctx = logging.WithEntity(ctx, records.KindPerson.String())

	guid := strings.TrimSpace(item.Get("guid").Text())
	if guid == "" {
		enter(ctx, StateNoGUID)
		return rec, false
	}
	ctx = logging.WithGUID(ctx, guid)
	enter(ctx, StateHasGUID)

	it := local("item", item)
	last := it.Sub("lastLegalCase", lastCase)

	b.merger.Apply(ctx, &rec, guid, StageList, b.listPlan(it, last))
	enter(ctx, StateListFieldsApplied)

	b.merger.Apply(ctx, &rec, guid, StageDetail, b.detailPlan(ctx, guid, it, &rec))
	enter(ctx, StateDetailMerged)

	b.merger.Apply(ctx, &rec, guid, StageAuxiliary, b.auxiliaryPlan(ctx, guid, &rec))
	enter(ctx, StateAuxiliaryFilled)

	enter(ctx, StateDefaultsFilled)
	return rec, true
}

func (b *PersonBuilder) listPlan(it, last *doc) reconciler.Plan {
	return reconciler.Plan{
		{Field: records.CaseNumber, Chain: caseNumberChain(last)},
		{Field: records.BankruptcyStatus, Chain: bankruptcyStatusChain(last)},
		{Field: records.ProcedureType, Chain: procedureChain(last)},
		{Field: records.ArbitrationManagerName, Chain: managerNameChain(last)},
		{Field: records.Region, Chain: regionChain(it)},
	}
}

func (b *PersonBuilder) detailPlan(ctx context.Context, guid string, it *doc, rec *records.Person) reconciler.Plan {
	card := remote(ctx, b.fetcher, "card", fedresurs.Person(guid))

	return reconciler.Plan{
		{Field: records.FullName, Chain: reconciler.Of(
			card.Func("fullName", personFullName),
			it.Keys("fullName", "fio", "name"),
			it.Path("debtor", "fullName"),
			it.Path("debtor", "fio"),
			it.Path("debtor", "name"),
		)},
		{Field: records.PreviousFullName, Chain: reconciler.Of(
			card.Func("nameHistories", func(n payload.Node) string {
				return unlessSame(previousSurname(n), surname(rec.FullName))
			}),
		)},
		{Field: records.INN, Chain: reconciler.Of(card.Path("inn"), card.Deep("inn"), it.Path("inn"))},
		{Field: records.SNILS, Chain: reconciler.Of(card.Path("snils"), card.Deep("snils"), it.Path("snils"))},
		{Field: records.BirthDate, Chain: reconciler.Of(
			date(card.Keys("birthdateBankruptcy", "birthDate")),
			date(card.Deep("birthdateBankruptcy", "birthDate", "birthdate", "dateOfBirth")),
		)},
		{Field: records.BirthPlace, Chain: reconciler.Of(
			card.Keys("birthplaceBankruptcy", "birthPlace"),
			card.Deep("birthplaceBankruptcy", "birthPlace", "birthplace", "placeOfBirth"),
		)},
		{Field: records.ResidenceAddress, Chain: reconciler.Of(
			card.Keys("address", "residenceAddress"),
			card.Deep("residenceAddress", "address", "fullAddress", "value"),
			it.Keys("address", "residenceAddress"),
		)},
		{Field: records.Region, Chain: reconciler.Of(
			reconciler.Func("residenceAddress", func() string { return region.Extract(rec.ResidenceAddress) }),
		)},
		{Field: records.BankruptcyStatus, Chain: bankruptcyStatusChain(card)},
		{Field: records.SourceURL, Chain: reconciler.Of(
			reconciler.Value("card", b.fetcher.URL(fedresurs.Person(guid))),
		)},
	}
}

func (b *PersonBuilder) auxiliaryPlan(ctx context.Context, guid string, rec *records.Person) reconciler.Plan {
	registry := remote(ctx, b.fetcher, "entrepreneurs", fedresurs.PersonEntrepreneurs(guid, constants.AuxiliaryPageSize, 0))
	entry := registry.Sub("entrepreneurs.pageData[0]", firstPage)
	general := remote(ctx, b.fetcher, "general-info", fedresurs.PersonGeneralInfo(guid))

	return reconciler.Plan{
		{Field: records.EntrepreneurOGRNIP, Chain: reconciler.Of(entry.Keys("ogrnip", "ogrnIp", "ogrnipNumber"))},
		{Field: records.OKVED, Chain: reconciler.Of(
			entry.Func("okved.code|name", func(n payload.Node) string {
				return joinCodeName(
					firstText(n.Get("okved", "code"), n.Get("okvedCode")),
					firstText(n.Get("okved", "name"), n.Get("okvedName")),
				)
			}),
			entry.Keys("okved", "okvedMain"),
		)},
		{Field: records.RegistrationDate, Chain: reconciler.Of(
			date(entry.Keys("dateReg", "registrationDate", "dateRegistration")),
		)},
		{Field: records.EntrepreneurStatus, Chain: reconciler.Of(
			entry.Path("status", "name"),
			entry.Path("status", "description"),
			entry.Path("status", "code"),
			entry.Func("status.isActive", func(n payload.Node) string {
				if n.Missing() {
					return ""
				}
				if entrepreneurActive(n) {
					return EntrepreneurActive
				}
				return EntrepreneurTerminated
			}),
		)},
		{Field: records.TerminationDate, Chain: reconciler.Of(
			reconciler.When(
				date(entry.Func("status.date|dateEnd|terminationDate", func(n payload.Node) string {
					return firstText(n.Get("status", "date"), n.Get("dateEnd"), n.Get("terminationDate"))
				})),
				func(string) bool { return !entrepreneurActive(entry.Node()) },
			),
		)},
		{Field: records.PreviousFullName, Chain: reconciler.Of(
			general.Func("deep:previousFullName", func(n payload.Node) string {
				prev := n.FindDeep("previousFullName", "previousName", "oldName")
				if prev == "" {
					prev = n.FindDeep("fioPrevious", "fullNamePrevious")
				}
				return unlessSame(prev, rec.FullName)
			}),
		)},
	}
}

func bankruptcyStatusChain(c *doc) reconciler.Chain {
	return reconciler.Of(
		c.Path("status", "description"),
		c.Path("status", "name"),
		c.Path("statusName"),
		c.Path("status"),
	)
}

// entrepreneurActive reads status.isActive, which defaults to true.
func entrepreneurActive(entry payload.Node) bool {
	if v, ok := entry.Get("status", "isActive").Bool(); ok {
		return v
	}
	return true
}

func firstText(nodes ...payload.Node) string {
	for _, n := range nodes {
		if s := strings.TrimSpace(n.Text()); s != "" {
			return s
		}
	}
	return ""
}
