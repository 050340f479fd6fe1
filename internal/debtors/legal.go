package debtors

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/dates"
	"github.com/agentstation/bankrot/pkg/logging"
	"github.com/agentstation/bankrot/pkg/payload"
	"github.com/agentstation/bankrot/pkg/reconciler"
	"github.com/agentstation/bankrot/pkg/records"
	"github.com/agentstation/bankrot/pkg/region"

	"github.com/agentstation/bankrot/internal/sources/fedresurs"
)

// LegalBuilder assembles company records.
type LegalBuilder struct {
	fetcher Fetcher
	merger  reconciler.Reconciler
	opts    Options
}

// NewLegalBuilder creates a builder reading cards through f.
func NewLegalBuilder(f Fetcher, r reconciler.Reconciler, opts Options) *LegalBuilder {
	return &LegalBuilder{fetcher: f, merger: r, opts: opts}
}

// Build assembles the record for one list item. It reports false, with an
// empty record, when the item carries no guid.
func (b *LegalBuilder) Build(ctx context.Context, item payload.Node) (records.LegalEntity, bool) {
	var rec records.LegalEntity
	ctx = logging.WithEntity(ctx, records.KindLegal.String())

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

	b.merger.Apply(ctx, &rec, guid, StageAuxiliary, b.auxiliaryPlan(ctx, guid))
	enter(ctx, StateAuxiliaryFilled)

	b.merger.Apply(ctx, &rec, guid, StageDefaults, b.defaultsPlan())
	enter(ctx, StateDefaultsFilled)

	return rec, true
}

func (b *LegalBuilder) listPlan(it, last *doc) reconciler.Plan {
	return reconciler.Plan{
		{Field: records.CaseNumber, Chain: caseNumberChain(last)},
		{Field: records.ProcedureType, Chain: procedureChain(last)},
		{Field: records.CaseStatus, Chain: caseStatusChain(it, last)},
		{Field: records.ArbitrationManagerName, Chain: managerNameChain(last, it)},
		{Field: records.ArbitrationManagerINN, Chain: reconciler.Of(
			last.Keys("arbitrManagerInn", "arbitrManagerINN"),
			last.Path("arbitrationManager", "inn"),
			last.Path("manager", "inn"),
		)},
		{Field: records.ManagerAppointmentDate, Chain: reconciler.Of(
			date(last.Keys(appointmentKeys...)),
		)},
		{Field: records.CaseEndDate, Chain: reconciler.Of(
			date(last.Keys(caseEndDateKeys...)),
			date(it.Keys(caseEndDateKeys...)),
		)},
		{Field: records.Region, Chain: regionChain(it)},
	}
}

func (b *LegalBuilder) detailPlan(ctx context.Context, guid string, it *doc, rec *records.LegalEntity) reconciler.Plan {
	card := remote(ctx, b.fetcher, "card", fedresurs.Company(guid))

	return reconciler.Plan{
		{Field: records.FullName, Chain: reconciler.Of(
			card.Keys("fullName", "name", "shortName"),
			it.Keys("fullName", "name"),
		)},
		{Field: records.INN, Chain: reconciler.Of(card.Path("inn"), it.Path("inn"))},
		{Field: records.OGRN, Chain: reconciler.Of(card.Path("ogrn"), it.Path("ogrn"))},
		{Field: records.KPP, Chain: reconciler.Of(card.Path("kpp"))},
		{Field: records.Address, Chain: reconciler.Of(
			card.Keys("address", "addressFgu", "addressEgrul"),
			card.Path("address", "fullAddress"),
			card.Path("address", "value"),
			it.Path("address"),
		)},
		{Field: records.Region, Chain: reconciler.Of(
			card.Path("region", "name"),
			card.Path("region"),
			card.Path("address", "region"),
			card.Path("address", "regionName"),
			reconciler.Func("address", func() string { return region.Extract(rec.Address) }),
		)},
		{Field: records.OKVED, Chain: reconciler.Of(
			card.Func("okved.code|name", codeName("okved")),
			card.Keys("okved", "okvedMain", "okvedCode"),
		)},
		{Field: records.LegalForm, Chain: reconciler.Of(
			card.Func("okopf.code|name", codeName("okopf")),
			card.Keys("okopf", "legalForm"),
		)},
		{Field: records.Status, Chain: reconciler.Of(card.Path("status", "name"), card.Path("status"))},
		{Field: records.RegistrationDate, Chain: reconciler.Of(
			reconciler.Map(card.Keys("dateReg", "registrationDate", "regDate", "dateRegistration"), dates.NormalizeOrKeep),
		)},
		{Field: records.AuthorizedCapital, Chain: reconciler.Of(card.Keys("authorizedCapital", "capital"))},
		{Field: records.SourceURL, Chain: reconciler.Of(
			reconciler.Value("card", b.fetcher.URL(fedresurs.Company(guid))),
		)},
	}
}

func (b *LegalBuilder) auxiliaryPlan(ctx context.Context, guid string) reconciler.Plan {
	pubs := remote(ctx, b.fetcher, "publications", fedresurs.CompanyPublications(guid, constants.AuxiliaryPageSize, 0))
	trades := remote(ctx, b.fetcher, "biddings", fedresurs.Biddings(guid, constants.AuxiliaryPageSize, 0))
	bankruptcy := remote(ctx, b.fetcher, "bankruptcy", fedresurs.CompanyBankruptcy(guid))
	legalCase := bankruptcy.Sub("bankruptcy.legalCases[0]", firstCase)
	ieb := remote(ctx, b.fetcher, "ieb", fedresurs.CompanyIEB(guid))
	entry := ieb.Sub("ieb.pageData[0]", firstPage)

	tradesChain := reconciler.Of(trades.Count())
	if b.opts.TradesHTMLFallback {
		tradesChain = append(tradesChain, reconciler.Func("page.trades", func() string {
			return b.scrapeTrades(ctx, guid)
		}))
	}

	return reconciler.Plan{
		{Field: records.PublicationsCount, Chain: reconciler.Of(pubs.Count())},
		{Field: records.TradesCount, Chain: tradesChain},
		{Field: records.CaseEndDate, Chain: reconciler.Of(
			date(bankruptcy.Deep(caseEndDateKeys...)),
			date(legalCase.Keys("caseEndDate", "endDate", "dateEnd", "finishDate", "completionDate")),
		)},
		{Field: records.CaseStatus, Chain: reconciler.Of(bankruptcy.Flags(), legalCase.Flags())},
		{Field: records.CaseNumber, Chain: reconciler.Of(legalCase.Keys("number", "caseNumber"))},
		{Field: records.ProcedureType, Chain: procedureChain(legalCase)},
		{Field: records.ArbitrationManagerINN, Chain: reconciler.Of(
			ieb.Deep("arbitrationManagerInn", "arbitrationManagerINN", "arbitrManagerInn", "managerInn"),
			ieb.Path("arbitrationManager", "inn"),
			ieb.Path("manager", "inn"),
			ieb.Path("inn"),
			entry.Path("inn"),
			entry.Path("arbitrationManagerInn"),
			entry.Path("arbitrationManager", "inn"),
		)},
		{Field: records.ManagerAppointmentDate, Chain: reconciler.Of(
			date(ieb.Deep(appointmentKeys...)),
			date(ieb.Deep("egrulDateCreate", "dateCreate", "dateCreated")),
			date(ieb.Path("date")),
			date(entry.Keys("managerAppointmentDate", "appointmentDate", "egrulDateCreate", "dateCreate", "date")),
		)},
		{Field: records.ArbitrationManagerName, Chain: append(
			reconciler.Of(ieb.Deep(managerNameKeys...)),
			managerNameChain(entry)...,
		)},
	}
}

func (b *LegalBuilder) defaultsPlan() reconciler.Plan {
	caseStatus := constants.NotAvailable
	if b.opts.ActiveCaseDefault {
		caseStatus = constants.StatusActive
	}
	return reconciler.Plan{
		placeholder(records.CaseEndDate),
		placeholder(records.PublicationsCount),
		placeholder(records.TradesCount),
		{Field: records.CaseStatus, Chain: reconciler.Of(reconciler.Value("placeholder", caseStatus))},
	}
}

// scrapeTrades counts trades on the public company page. A page without a
// trades section counts as zero trades; an unavailable page has no count.
func (b *LegalBuilder) scrapeTrades(ctx context.Context, guid string) string {
	body := b.fetcher.Get(ctx, fedresurs.CompanyPage(guid), fedresurs.PageHeaders())
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	n, found := fedresurs.CountTrades(bytes.NewReader(body))
	if !found {
		logging.FromContext(ctx).Debug().Msg("No trades section on company page")
		return "0"
	}
	return strconv.Itoa(n)
}

func codeName(key string) func(payload.Node) string {
	return func(n payload.Node) string {
		return joinCodeName(n.Get(key, "code").Text(), n.Get(key, "name").Text())
	}
}
