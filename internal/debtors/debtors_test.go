package debtors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bankrot/pkg/payload"
)

func TestReadCount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", ``, ""},
		{"found", `{"found": 12, "total": 99}`, "12"},
		{"total as string", `{"total": "4"}`, "4"},
		{"zero is a count", `{"count": 0, "pageData": [{}]}`, "0"},
		{"negative skipped", `{"found": -1, "total": 5}`, "5"},
		{"page length", `{"pageData": [{}, {}, {}]}`, "3"},
		{"empty page", `{"pageData": []}`, "0"},
		{"no count", `{"items": []}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readCount(payload.Parse([]byte(tt.body))))
		})
	}
}

func TestJoinCodeName(t *testing.T) {
	assert.Equal(t, "62.01 — Разработка", joinCodeName(" 62.01 ", "Разработка "))
	assert.Equal(t, "62.01", joinCodeName("62.01", ""))
	assert.Equal(t, "Разработка", joinCodeName("", "Разработка"))
	assert.Equal(t, "", joinCodeName(" ", ""))
}

func TestSurname(t *testing.T) {
	assert.Equal(t, "Иванов", surname("  Иванов   Иван Иванович"))
	assert.Equal(t, "", surname("   "))
	assert.Equal(t, "Иванов Иван", normalizeSpaces(" Иванов \t Иван "))
}

func TestDoc_LoadsOnce(t *testing.T) {
	loads := 0
	d := &doc{name: "card", load: func() payload.Node {
		loads++
		return payload.Parse([]byte(`{"inn": "7700", "pageData": [{"ogrnip": "3040"}]}`))
	}}
	entry := d.Sub("card.pageData[0]", firstPage)

	assert.Equal(t, 0, loads)

	src := d.Path("inn")
	assert.Equal(t, "card.inn", src.Name)
	assert.Equal(t, "7700", src.Resolve())
	assert.Equal(t, "7700", d.Keys("kpp", "inn").Resolve())
	assert.Equal(t, "3040", entry.Deep("ogrnip").Resolve())
	assert.Equal(t, "card.pageData[0].deep:ogrnip", entry.Deep("ogrnip").Name)
	assert.Equal(t, 1, loads)
}
