package records

// Legal entity column names.
const (
	FullName               = "FullName"
	INN                    = "INN"
	OGRN                   = "OGRN"
	KPP                    = "KPP"
	AuthorizedCapital      = "AuthorizedCapital"
	RegistrationDate       = "RegistrationDate"
	Address                = "Address"
	Region                 = "Region"
	LegalForm              = "LegalForm"
	OKVED                  = "OKVED"
	Status                 = "Status"
	ProcedureType          = "ProcedureType"
	CaseNumber             = "CaseNumber"
	CaseStatus             = "CaseStatus"
	CaseEndDate            = "CaseEndDate"
	ArbitrationManagerName = "ArbitrationManagerName"
	ArbitrationManagerINN  = "ArbitrationManagerINN"
	ManagerAppointmentDate = "ManagerAppointmentDate"
	PublicationsCount      = "PublicationsCount"
	TradesCount            = "TradesCount"
	SourceURL              = "SourceURL"
)

var legalHeaders = []string{
	FullName, INN, OGRN, KPP, AuthorizedCapital, RegistrationDate, Address, Region,
	LegalForm, OKVED, Status, ProcedureType, CaseNumber, CaseStatus, CaseEndDate,
	ArbitrationManagerName, ArbitrationManagerINN, ManagerAppointmentDate,
	PublicationsCount, TradesCount, SourceURL,
}

// LegalEntity is one insolvent company.
type LegalEntity struct {
	FullName               string `json:"fullName" yaml:"fullName"`
	INN                    string `json:"inn" yaml:"inn"`
	OGRN                   string `json:"ogrn" yaml:"ogrn"`
	KPP                    string `json:"kpp" yaml:"kpp"`
	AuthorizedCapital      string `json:"authorizedCapital" yaml:"authorizedCapital"`
	RegistrationDate       string `json:"registrationDate" yaml:"registrationDate"`
	Address                string `json:"address" yaml:"address"`
	Region                 string `json:"region" yaml:"region"`
	LegalForm              string `json:"legalForm" yaml:"legalForm"`
	OKVED                  string `json:"okved" yaml:"okved"`
	Status                 string `json:"status" yaml:"status"`
	ProcedureType          string `json:"procedureType" yaml:"procedureType"`
	CaseNumber             string `json:"caseNumber" yaml:"caseNumber"`
	CaseStatus             string `json:"caseStatus" yaml:"caseStatus"`
	CaseEndDate            string `json:"caseEndDate" yaml:"caseEndDate"`
	ArbitrationManagerName string `json:"arbitrationManagerName" yaml:"arbitrationManagerName"`
	ArbitrationManagerINN  string `json:"arbitrationManagerInn" yaml:"arbitrationManagerInn"`
	ManagerAppointmentDate string `json:"managerAppointmentDate" yaml:"managerAppointmentDate"`
	PublicationsCount      string `json:"publicationsCount" yaml:"publicationsCount"`
	TradesCount            string `json:"tradesCount" yaml:"tradesCount"`
	SourceURL              string `json:"sourceUrl" yaml:"sourceUrl"`
}

// LegalHeaders returns the legal entity columns in output order.
func LegalHeaders() []string {
	return append([]string(nil), legalHeaders...)
}

func (r *LegalEntity) fields() []*string {
	return []*string{
		&r.FullName, &r.INN, &r.OGRN, &r.KPP, &r.AuthorizedCapital, &r.RegistrationDate, &r.Address, &r.Region,
		&r.LegalForm, &r.OKVED, &r.Status, &r.ProcedureType, &r.CaseNumber, &r.CaseStatus, &r.CaseEndDate,
		&r.ArbitrationManagerName, &r.ArbitrationManagerINN, &r.ManagerAppointmentDate,
		&r.PublicationsCount, &r.TradesCount, &r.SourceURL,
	}
}

// Kind returns KindLegal.
func (r *LegalEntity) Kind() Kind { return KindLegal }

// Headers returns the legal entity columns in output order.
func (r *LegalEntity) Headers() []string { return LegalHeaders() }

// Values returns the trimmed field values in header order.
func (r *LegalEntity) Values() []string { return values(r.fields()) }

// Field returns the field stored under the column name, matched
// case-insensitively, or nil for an unknown column.
func (r *LegalEntity) Field(name string) *string { return column(legalHeaders, r.fields(), name) }

// Blank reports whether every field is empty.
func (r *LegalEntity) Blank() bool { return blank(r.fields()) }
