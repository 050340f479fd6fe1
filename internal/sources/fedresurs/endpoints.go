// Package fedresurs addresses the bankrot.fedresurs.ru and fedresurs.ru
// services and scrapes the parts of the public card pages that have no JSON
// endpoint.
package fedresurs

import (
	"fmt"
	"net/url"
)

// Service base URLs.
const (
	// ListBaseURL serves the paginated debtor lists.
	ListBaseURL = "https://bankrot.fedresurs.ru"
	// CardBaseURL serves debtor cards and their sub-resources.
	CardBaseURL = "https://fedresurs.ru"
)

// DefaultListHeaders returns the static headers expected by the list service.
func DefaultListHeaders() map[string]string {
	return map[string]string{
		"Referer": ListBaseURL + "/",
		"Origin":  ListBaseURL,
	}
}

// DefaultCardHeaders returns the static headers expected by the card service.
func DefaultCardHeaders() map[string]string {
	return map[string]string{
		"Referer": CardBaseURL + "/",
		"Origin":  CardBaseURL,
	}
}

// CardReferer is the per-request header set sent with card sub-resources.
func CardReferer() map[string]string {
	return map[string]string{"Referer": CardBaseURL + "/"}
}

// PageHeaders is the per-request header set sent with public HTML pages.
func PageHeaders() map[string]string {
	return map[string]string{
		"Referer": CardBaseURL + "/",
		"Accept":  "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	}
}

// CompanyList pages insolvent companies with an active case.
func CompanyList(limit, offset int) string {
	return fmt.Sprintf("/backend/cmpbankrupts?isActiveLegalCase=true&limit=%d&offset=%d", limit, offset)
}

// PersonList pages insolvent persons with an active case.
func PersonList(limit, offset int) string {
	return fmt.Sprintf("/backend/prsnbankrupts?isActiveLegalCase=true&limit=%d&offset=%d", limit, offset)
}

// Company is the company card.
func Company(guid string) string {
	return "/backend/companies/" + url.PathEscape(guid)
}

// Person is the person card.
func Person(guid string) string {
	return "/backend/persons/" + url.PathEscape(guid)
}

// CompanyPublications pages messages published about a company.
func CompanyPublications(guid string, limit, offset int) string {
	return fmt.Sprintf("/backend/companies/%s/publications?limit=%d&offset=%d", url.PathEscape(guid), limit, offset)
}

// Biddings pages the trades held for a bankrupt. The guid is the debtor
// identifier from the list endpoints.
func Biddings(bankruptGUID string, limit, offset int) string {
	return fmt.Sprintf("/backend/biddings?limit=%d&offset=%d&bankruptGuid=%s", limit, offset, url.QueryEscape(bankruptGUID))
}

// CompanyBankruptcy is the bankruptcy case summary of a company.
func CompanyBankruptcy(guid string) string {
	return "/backend/companies/" + url.PathEscape(guid) + "/bankruptcy"
}

// CompanyIEB is the registry extract naming the arbitration manager.
func CompanyIEB(guid string) string {
	return "/backend/companies/" + url.PathEscape(guid) + "/ieb"
}

// PersonGeneralInfo is the general information block of a person card.
func PersonGeneralInfo(guid string) string {
	return "/backend/persons/" + url.PathEscape(guid) + "/general-info"
}

// PersonEntrepreneurs pages the sole-proprietor registrations of a person.
func PersonEntrepreneurs(guid string, limit, offset int) string {
	return fmt.Sprintf("/backend/persons/%s/individual-entrepreneurs?limit=%d&offset=%d", url.PathEscape(guid), limit, offset)
}

// CompanyPage is the public HTML card of a company.
func CompanyPage(guid string) string {
	return "/companies/" + url.PathEscape(guid)
}
