package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bankrot/pkg/payload"
	"github.com/agentstation/bankrot/pkg/status"
)

func TestFromFlags(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"finished wins over active", `{"isFinished":true,"isActive":true}`, status.Finished},
		{"active false without finished", `{"isActive":false}`, status.Finished},
		{"both absent", `{"number":"А40-1"}`, status.Unknown},
		{"active true", `{"case":{"isActiveLegalCase":1}}`, status.Active},
		{"finished false falls through to active", `{"closed":"false","active":"true"}`, status.Active},
		{"finished false and no active", `{"isClosed":false}`, status.Unknown},
		{"nested textual flag", `{"legalCases":[{"isTerminated":"TRUE"}]}`, status.Finished},
		{"missing payload", ``, status.Unknown},
		{"unrecognised encodings", `{"isActive":"yes","isFinished":2}`, status.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.FromFlags(payload.Parse([]byte(tt.body))))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		want  status.Category
	}{
		{"Конкурсное производство", status.CategoryProcedure},
		{"НАБЛЮДЕНИЕ", status.CategoryProcedure},
		{"Реструктуризация долгов", status.CategoryProcedure},
		{"Завершено", status.CategoryCaseStatus},
		{"Дело закрыто", status.CategoryCaseStatus},
		{"Введена процедура", status.CategoryCaseStatus},
		{"", status.CategoryUnknown},
		{"Ромашка", status.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Classify(tt.label))
		})
	}
}

func TestClassify_Overlap(t *testing.T) {
	label := "Производство по делу прекращено"
	assert.True(t, status.LooksLikeProcedure(label))
	assert.True(t, status.LooksLikeCaseStatus(label))
	assert.Equal(t, status.CategoryProcedure, status.Classify(label))

	assert.False(t, status.LooksLikeProcedure("Активно"))
	assert.True(t, status.LooksLikeCaseStatus("Активно"))
}
