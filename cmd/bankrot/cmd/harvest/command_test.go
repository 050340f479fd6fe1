package harvest_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/bankrot/cmd/bankrot/cmd/harvest"
	"github.com/agentstation/bankrot/internal/cmd/application"
	"github.com/agentstation/bankrot/internal/export"
	"github.com/agentstation/bankrot/internal/sources/fedresurs"
	"github.com/agentstation/bankrot/internal/transport"
	"github.com/agentstation/bankrot/pkg/provenance"
)

// fedresursServer serves canned bodies by request URI and 404 otherwise.
func fedresursServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.RequestURI()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func mockApp(srv *httptest.Server, dir string) *application.Mock {
	return &application.Mock{
		ClientsFunc: func(opts ...transport.Option) (*transport.Client, *transport.Client) {
			return transport.New(srv.URL, opts...), transport.New(srv.URL, opts...)
		},
		OutputDirFunc: func() string { return dir },
	}
}

var legalBodies = map[string]string{
	fedresurs.CompanyList(2, 0): `{"pageData": [{"guid": "g1", "lastLegalCase": {"number": "А40-1/2024"}}]}`,
	fedresurs.CompanyList(2, 2): `{"pageData": []}`,
	fedresurs.Company("g1"):     `{"fullName": "ООО Ромашка", "inn": "7700000001"}`,
}

func TestCommand_Harvest(t *testing.T) {
	dir := t.TempDir()
	srv := fedresursServer(t, legalBodies)

	out := filepath.Join(dir, "debtors.xlsx")
	report := filepath.Join(dir, "report.md")
	prov := filepath.Join(dir, "provenance.yaml")

	cmd := harvest.NewCommand(mockApp(srv, dir))
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{
		"--out", out,
		"--report", report,
		"--provenance", prov,
		"--kinds", "legal",
		"--page-size", "2",
		"--legal-target", "5",
	})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(export.LegalSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ООО Ромашка", rows[1][0])

	md, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Harvest report")

	pf, err := provenance.Load(prov)
	require.NoError(t, err)
	require.NotNil(t, pf)
	assert.NotEmpty(t, pf.RunID)
	require.Contains(t, pf.Provenance, "legal:g1:FullName")
	assert.Equal(t, "detail", pf.Provenance["legal:g1:FullName"][0].Stage)

	assert.Contains(t, stdout.String(), "Saved 1 records to "+out)
	assert.Contains(t, stdout.String(), "Wrote run report to "+report)
	assert.Contains(t, stdout.String(), "Wrote field provenance to "+prov)
	assert.Contains(t, stdout.String(), "legal")
	assert.Contains(t, stdout.String(), "card")
}

func TestCommand_DefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	srv := fedresursServer(t, legalBodies)

	cmd := harvest.NewCommand(mockApp(srv, dir))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--kinds", "legal", "--page-size", "2", "--report", "-"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	matches, err := filepath.Glob(filepath.Join(dir, "fedresurs_debtors_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCommand_CanceledRunStillSaves(t *testing.T) {
	dir := t.TempDir()
	srv := fedresursServer(t, legalBodies)
	out := filepath.Join(dir, "partial.xlsx")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := harvest.NewCommand(mockApp(srv, dir))
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--out", out})
	err := cmd.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, stdout.String(), "Harvest stopped early")

	_, statErr := os.Stat(out)
	assert.NoError(t, statErr, "partial workbook is saved")
}

func TestCommand_InvalidFlags(t *testing.T) {
	dir := t.TempDir()
	srv := fedresursServer(t, legalBodies)

	cmd := harvest.NewCommand(mockApp(srv, dir))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--kinds", "company"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}
