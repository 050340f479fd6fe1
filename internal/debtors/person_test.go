package debtors_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bankrot/internal/debtors"
	"github.com/agentstation/bankrot/internal/sources/fedresurs"
	"github.com/agentstation/bankrot/pkg/records"
)

const ivanovItem = `{
	"guid": "p1",
	"fio": "Иванов Иван Иванович",
	"lastLegalCase": {
		"number": "А41-100/2023",
		"status": {"name": "Реализация имущества гражданина", "description": "Введена процедура реализации имущества"},
		"arbitrManagerFio": "Сидоров Сидор Сидорович"
	}
}`

const ivanovCard = `{
	"fio": "Иванов  Иван Иванович",
	"inn": "771234567890",
	"snils": "123-456-789 00",
	"birthdateBankruptcy": "1980-04-02T00:00:00",
	"birthplaceBankruptcy": "г. Рязань",
	"address": "390000, Рязанская область, г. Рязань, ул. Есенина, д. 5",
	"nameHistories": ["Петров Иван Иванович"]
}`

func TestPersonBuilder_Build(t *testing.T) {
	f := &stubFetcher{bodies: map[string]string{
		fedresurs.Person("p1"): ivanovCard,
		fedresurs.PersonEntrepreneurs("p1", 1, 0): `{"pageData": [{
			"ogrnip": "304770000000011",
			"okvedCode": "47.91",
			"okvedName": "Торговля розничная по почте",
			"dateReg": "2004-07-01T00:00:00",
			"status": {"isActive": false, "date": "2019-12-31T00:00:00+03:00"}
		}]}`,
	}}
	b := debtors.NewPersonBuilder(f, newReconciler(t))

	rec, ok := b.Build(context.Background(), item(t, ivanovItem))
	require.True(t, ok)

	want := records.Person{
		FullName:               "Иванов Иван Иванович",
		PreviousFullName:       "Петров",
		INN:                    "771234567890",
		SNILS:                  "123-456-789 00",
		BirthDate:              "02.04.1980",
		BirthPlace:             "г. Рязань",
		ResidenceAddress:       "390000, Рязанская область, г. Рязань, ул. Есенина, д. 5",
		Region:                 "Рязанская Область",
		EntrepreneurOGRNIP:     "304770000000011",
		EntrepreneurStatus:     "Прекратил деятельность",
		OKVED:                  "47.91 — Торговля розничная по почте",
		RegistrationDate:       "01.07.2004",
		TerminationDate:        "31.12.2019",
		BankruptcyStatus:       "Введена процедура реализации имущества",
		ProcedureType:          "Реализация имущества гражданина",
		CaseNumber:             "А41-100/2023",
		ArbitrationManagerName: "Сидоров Сидор Сидорович",
		SourceURL:              "https://fedresurs.ru/backend/persons/p1",
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestPersonBuilder_NoPlaceholders(t *testing.T) {
	f := &stubFetcher{}
	b := debtors.NewPersonBuilder(f, newReconciler(t))

	rec, ok := b.Build(context.Background(), item(t, `{"guid": "p2"}`))
	require.True(t, ok)

	assert.Empty(t, rec.BankruptcyStatus)
	assert.Empty(t, rec.FullName)
	assert.Empty(t, rec.EntrepreneurStatus)
	assert.Equal(t, "https://fedresurs.ru/backend/persons/p2", rec.SourceURL)
	assert.Contains(t, f.calls, fedresurs.PersonGeneralInfo("p2"))
}

func TestPersonBuilder_NoGUID(t *testing.T) {
	f := &stubFetcher{}
	b := debtors.NewPersonBuilder(f, newReconciler(t))

	rec, ok := b.Build(context.Background(), item(t, `{"fio": "Иванов Иван Иванович"}`))
	assert.False(t, ok)
	assert.True(t, rec.Blank())
	assert.Empty(t, f.calls)
}

func TestPersonBuilder_FullNameSources(t *testing.T) {
	tests := []struct {
		name string
		item string
		card string
		want string
	}{
		{
			name: "nested card name",
			item: `{"guid": "p1", "fio": "Список Имя"}`,
			card: `{"debtor": {"personName": "Карточка  Имя Отчество"}}`,
			want: "Карточка Имя Отчество",
		},
		{
			name: "top level parts",
			item: `{"guid": "p1"}`,
			card: `{"lastName": "Смирнова", "firstName": "Анна", "patronymic": "Петровна"}`,
			want: "Смирнова Анна Петровна",
		},
		{
			name: "nested parts",
			item: `{"guid": "p1"}`,
			card: `{"info": {"surname": "Козлов", "givenName": "Олег"}}`,
			want: "Козлов Олег",
		},
		{
			name: "top level parts beat nested region name",
			item: `{"guid": "p1"}`,
			card: `{"lastName": "Петров", "firstName": "Иван", "region": {"name": "Тверская область"}, "address": "170000, Тверская область, г. Тверь"}`,
			want: "Петров Иван",
		},
		{
			name: "list item fallback",
			item: `{"guid": "p1", "debtor": {"fio": "Орлов Денис"}}`,
			card: ``,
			want: "Орлов Денис",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &stubFetcher{bodies: map[string]string{fedresurs.Person("p1"): tt.card}}
			b := debtors.NewPersonBuilder(f, newReconciler(t))

			rec, ok := b.Build(context.Background(), item(t, tt.item))
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.FullName)
		})
	}
}

func TestPersonBuilder_PreviousName(t *testing.T) {
	tests := []struct {
		name    string
		card    string
		general string
		want    string
	}{
		{
			name: "history object with surname",
			card: `{"fio": "Иванова Мария", "nameHistories": [{"lastName": "Кузнецова"}]}`,
			want: "Кузнецова",
		},
		{
			name: "history object with full name",
			card: `{"fio": "Иванова Мария", "nameHistories": [{"fullName": "Соколова Мария Ивановна"}]}`,
			want: "Соколова",
		},
		{
			name: "same surname suppressed",
			card: `{"fio": "Иванова Мария", "nameHistories": ["иванова Мария Петровна"]}`,
			want: "",
		},
		{
			name: "deep surname key",
			card: `{"fio": "Иванова Мария", "extra": {"previousSurname": "Волкова"}}`,
			want: "Волкова",
		},
		{
			name:    "general info full name",
			card:    `{"fio": "Иванова Мария"}`,
			general: `{"info": {"previousFullName": "Лебедева Мария Олеговна"}}`,
			want:    "Лебедева Мария Олеговна",
		},
		{
			name:    "general info same as current",
			card:    `{"fio": "Иванова Мария"}`,
			general: `{"previousFullName": "ИВАНОВА МАРИЯ"}`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &stubFetcher{bodies: map[string]string{
				fedresurs.Person("p1"):            tt.card,
				fedresurs.PersonGeneralInfo("p1"): tt.general,
			}}
			b := debtors.NewPersonBuilder(f, newReconciler(t))

			rec, ok := b.Build(context.Background(), item(t, `{"guid": "p1"}`))
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.PreviousFullName)
		})
	}
}

func TestPersonBuilder_Entrepreneur(t *testing.T) {
	tests := []struct {
		name       string
		registry   string
		wantStatus string
		wantEnd    string
	}{
		{"no registration", `{"pageData": []}`, "", ""},
		{"active by default", `{"pageData": [{"ogrnip": "1"}]}`, debtors.EntrepreneurActive, ""},
		{"named status wins", `{"pageData": [{"status": {"name": "Действующий", "isActive": true, "date": "2020-01-01"}}]}`, "Действующий", ""},
		{"terminated", `{"pageData": [{"status": {"isActive": "false"}, "dateEnd": "2021-03-04"}]}`, debtors.EntrepreneurTerminated, "04.03.2021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &stubFetcher{bodies: map[string]string{fedresurs.PersonEntrepreneurs("p1", 1, 0): tt.registry}}
			b := debtors.NewPersonBuilder(f, newReconciler(t))

			rec, ok := b.Build(context.Background(), item(t, `{"guid": "p1"}`))
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, rec.EntrepreneurStatus)
			assert.Equal(t, tt.wantEnd, rec.TerminationDate)
		})
	}
}
