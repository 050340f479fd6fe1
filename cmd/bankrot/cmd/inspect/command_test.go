package inspect_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bankrot/cmd/bankrot/cmd/inspect"
	"github.com/agentstation/bankrot/internal/cmd/application"
	"github.com/agentstation/bankrot/internal/sources/fedresurs"
	"github.com/agentstation/bankrot/internal/transport"
	"github.com/agentstation/bankrot/pkg/records"
)

func newMock(t *testing.T, format string) *application.Mock {
	t.Helper()
	bodies := map[string]string{
		fedresurs.Company("g1"): `{"fullName": "ООО Ромашка", "inn": "7700000001"}`,
		fedresurs.Person("p1"):  `{"lastName": "Иванов", "firstName": "Иван", "middleName": "Иванович", "snils": "123-456-789 00"}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.RequestURI()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return &application.Mock{
		ClientsFunc: func(opts ...transport.Option) (*transport.Client, *transport.Client) {
			return transport.New(srv.URL, opts...), transport.New(srv.URL, opts...)
		},
		OutputFormatFunc: func() string { return format },
	}
}

func TestExecute_LegalJSON(t *testing.T) {
	var out bytes.Buffer
	err := inspect.Execute(context.Background(), newMock(t, "json"), records.KindLegal, "g1", &inspect.Flags{}, &out)
	require.NoError(t, err)

	var rec records.LegalEntity
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "ООО Ромашка", rec.FullName)
	assert.Equal(t, "7700000001", rec.INN)
	assert.Equal(t, "Активно", rec.CaseStatus)
}

func TestExecute_DetectsFormat(t *testing.T) {
	var out bytes.Buffer
	err := inspect.Execute(context.Background(), newMock(t, ""), records.KindLegal, "g1", &inspect.Flags{}, &out)
	require.NoError(t, err)

	var rec records.LegalEntity
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec), "piped output defaults to JSON")
	assert.Equal(t, "ООО Ромашка", rec.FullName)
}

func TestExecute_PersonYAML(t *testing.T) {
	var out bytes.Buffer
	err := inspect.Execute(context.Background(), newMock(t, "yaml"), records.KindPerson, "p1", &inspect.Flags{}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Иванов Иван Иванович")
	assert.Contains(t, out.String(), "123-456-789 00")
}

func TestExecute_TableWithProvenance(t *testing.T) {
	var out bytes.Buffer
	flags := &inspect.Flags{Provenance: true}
	err := inspect.Execute(context.Background(), newMock(t, "table"), records.KindLegal, "g1", flags, &out)
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "ООО Ромашка")
	assert.Contains(t, s, "detail")
	assert.Contains(t, s, "defaults")
}

func TestExecute_ProvenanceFilter(t *testing.T) {
	var out bytes.Buffer
	flags := &inspect.Flags{Provenance: true, Fields: []string{"inn"}}
	err := inspect.Execute(context.Background(), newMock(t, "json"), records.KindLegal, "g1", flags, &out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "defaults")
}

func TestExecute_Validation(t *testing.T) {
	mock := newMock(t, "json")

	err := inspect.Execute(context.Background(), mock, "company", "g1", &inspect.Flags{}, &bytes.Buffer{})
	require.Error(t, err)

	err = inspect.Execute(context.Background(), mock, records.KindLegal, "  ", &inspect.Flags{}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewCommand_Args(t *testing.T) {
	cmd := inspect.NewCommand(newMock(t, "json"))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"legal"})
	require.Error(t, cmd.ExecuteContext(context.Background()))

	cmd.SetArgs([]string{"legal", "g1"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "ООО Ромашка")
}
