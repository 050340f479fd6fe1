package export

import "github.com/agentstation/bankrot/pkg/records"

// Memory keeps records in memory.
type Memory struct {
	Legal   []records.LegalEntity
	Persons []records.Person
}

// AppendLegal stores a company record.
func (m *Memory) AppendLegal(rec records.LegalEntity) error {
	m.Legal = append(m.Legal, rec)
	return nil
}

// AppendPerson stores a person record.
func (m *Memory) AppendPerson(rec records.Person) error {
	m.Persons = append(m.Persons, rec)
	return nil
}
