package records

// Person column names not shared with legal entities.
const (
	PreviousFullName   = "PreviousFullName"
	SNILS              = "SNILS"
	BirthDate          = "BirthDate"
	BirthPlace         = "BirthPlace"
	ResidenceAddress   = "ResidenceAddress"
	EntrepreneurOGRNIP = "EntrepreneurOGRNIP"
	EntrepreneurStatus = "EntrepreneurStatus"
	TerminationDate    = "TerminationDate"
	BankruptcyStatus   = "BankruptcyStatus"
)

var personHeaders = []string{
	FullName, PreviousFullName, INN, SNILS, BirthDate, BirthPlace, ResidenceAddress, Region,
	EntrepreneurOGRNIP, EntrepreneurStatus, OKVED, RegistrationDate, TerminationDate,
	BankruptcyStatus, ProcedureType, CaseNumber, ArbitrationManagerName, SourceURL,
}

// Person is one insolvent natural person.
type Person struct {
	FullName               string `json:"fullName" yaml:"fullName"`
	PreviousFullName       string `json:"previousFullName" yaml:"previousFullName"`
	INN                    string `json:"inn" yaml:"inn"`
	SNILS                  string `json:"snils" yaml:"snils"`
	BirthDate              string `json:"birthDate" yaml:"birthDate"`
	BirthPlace             string `json:"birthPlace" yaml:"birthPlace"`
	ResidenceAddress       string `json:"residenceAddress" yaml:"residenceAddress"`
	Region                 string `json:"region" yaml:"region"`
	EntrepreneurOGRNIP     string `json:"entrepreneurOgrnip" yaml:"entrepreneurOgrnip"`
	EntrepreneurStatus     string `json:"entrepreneurStatus" yaml:"entrepreneurStatus"`
	OKVED                  string `json:"okved" yaml:"okved"`
	RegistrationDate       string `json:"registrationDate" yaml:"registrationDate"`
	TerminationDate        string `json:"terminationDate" yaml:"terminationDate"`
	BankruptcyStatus       string `json:"bankruptcyStatus" yaml:"bankruptcyStatus"`
	ProcedureType          string `json:"procedureType" yaml:"procedureType"`
	CaseNumber             string `json:"caseNumber" yaml:"caseNumber"`
	ArbitrationManagerName string `json:"arbitrationManagerName" yaml:"arbitrationManagerName"`
	SourceURL              string `json:"sourceUrl" yaml:"sourceUrl"`
}

// PersonHeaders returns the person columns in output order.
func PersonHeaders() []string {
	return append([]string(nil), personHeaders...)
}

func (r *Person) fields() []*string {
	return []*string{
		&r.FullName, &r.PreviousFullName, &r.INN, &r.SNILS, &r.BirthDate, &r.BirthPlace, &r.ResidenceAddress, &r.Region,
		&r.EntrepreneurOGRNIP, &r.EntrepreneurStatus, &r.OKVED, &r.RegistrationDate, &r.TerminationDate,
		&r.BankruptcyStatus, &r.ProcedureType, &r.CaseNumber, &r.ArbitrationManagerName, &r.SourceURL,
	}
}

// Kind returns KindPerson.
func (r *Person) Kind() Kind { return KindPerson }

// Headers returns the person columns in output order.
func (r *Person) Headers() []string { return PersonHeaders() }

// Values returns the trimmed field values in header order.
func (r *Person) Values() []string { return values(r.fields()) }

// Field returns the field stored under the column name, matched
// case-insensitively, or nil for an unknown column.
func (r *Person) Field(name string) *string { return column(personHeaders, r.fields(), name) }

// Blank reports whether every field is empty.
func (r *Person) Blank() bool { return blank(r.fields()) }
