package reconciler_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bankrot/pkg/logging"
	"github.com/agentstation/bankrot/pkg/payload"
	"github.com/agentstation/bankrot/pkg/provenance"
	"github.com/agentstation/bankrot/pkg/reconciler"
	"github.com/agentstation/bankrot/pkg/records"
)

func TestChain_Resolve(t *testing.T) {
	node := payload.Parse([]byte(`{"a":"  ","b":{"name":"deep-b"},"c":"direct-c","n":5}`))

	tests := []struct {
		name       string
		chain      reconciler.Chain
		wantValue  string
		wantSource string
	}{
		{"empty chain", nil, "", ""},
		{"blank skipped", reconciler.Of(reconciler.Path(node, "a"), reconciler.Path(node, "c")), "direct-c", "c"},
		{"object path has no text", reconciler.Of(reconciler.Path(node, "b"), reconciler.Path(node, "b", "name")), "deep-b", "b.name"},
		{"deep reads nested name", reconciler.Of(reconciler.Deep(node, "b")), "deep-b", "deep:b"},
		{"keys", reconciler.Of(reconciler.Keys(node, "a", "n")), "5", "a|n"},
		{"value", reconciler.Of(reconciler.Path(node, "x"), reconciler.Value("default", " v ")), "v", "default"},
		{"nil resolver skipped", reconciler.Of(reconciler.Source{Name: "nil"}, reconciler.Value("ok", "1")), "1", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, source := tt.chain.Resolve()
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestChain_Lazy(t *testing.T) {
	calls := 0
	counted := reconciler.Func("counted", func() string {
		calls++
		return "late"
	})

	value, _ := reconciler.Of(reconciler.Value("first", "early"), counted).Resolve()
	assert.Equal(t, "early", value)
	assert.Zero(t, calls, "later sources are not evaluated")
}

func TestMapWhenNamed(t *testing.T) {
	upper := reconciler.Map(reconciler.Value("raw", "abc"), strings.ToUpper)
	v, src := reconciler.Of(upper).Resolve()
	assert.Equal(t, "ABC", v)
	assert.Equal(t, "raw", src)

	rejected := reconciler.When(reconciler.Value("raw", "abc"), func(s string) bool { return s == "xyz" })
	v, _ = reconciler.Of(rejected).Resolve()
	assert.Empty(t, v)

	mapped := 0
	blank := reconciler.Map(reconciler.Value("raw", " "), func(s string) string {
		mapped++
		return "x"
	})
	v, _ = reconciler.Of(blank).Resolve()
	assert.Empty(t, v)
	assert.Zero(t, mapped, "blank values are not transformed")

	_, src = reconciler.Of(reconciler.Named("renamed", reconciler.Value("raw", "1"))).Resolve()
	assert.Equal(t, "renamed", src)

	_, src = reconciler.Of(reconciler.Value("inn", "1")).Prefix("card:").Resolve()
	assert.Equal(t, "card:inn", src)
}

func TestApply_WriteOnce(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	rec := &records.LegalEntity{INN: "111"}
	ctx := context.Background()

	n := r.Apply(ctx, rec, "g1", "list", reconciler.Plan{
		{Field: records.INN, Chain: reconciler.Of(reconciler.Value("list", "222"))},
		{Field: records.FullName, Chain: reconciler.Of(reconciler.Value("list:name", "ООО Ромашка"))},
		{Field: records.OGRN, Chain: reconciler.Of(reconciler.Value("list:ogrn", ""))},
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, "111", rec.INN, "filled fields are never overwritten")
	assert.Equal(t, "ООО Ромашка", rec.FullName)

	n = r.Apply(ctx, rec, "g1", "detail", reconciler.Plan{
		{Field: records.FullName, Chain: reconciler.Of(reconciler.Value("card", "ООО Лютик"))},
		{Field: records.OGRN, Chain: reconciler.Of(reconciler.Value("card:ogrn", "102"))},
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, "ООО Ромашка", rec.FullName, "earlier stage wins")
	assert.Equal(t, "102", rec.OGRN)

	got := r.Provenance().FindByField(records.KindLegal, "g1", records.OGRN)
	require.Len(t, got, 1)
	assert.Equal(t, "card:ogrn", got[0].Source)
	assert.Equal(t, "detail", got[0].Stage)
	assert.Empty(t, r.Provenance().FindByField(records.KindLegal, "g1", records.INN))
}

func TestApply_Deterministic(t *testing.T) {
	item := payload.Parse([]byte(`{"lastLegalCase":{"number":"А40-1/2020"},"caseNumber":"X"}`))
	plan := reconciler.Plan{
		{Field: records.CaseNumber, Chain: reconciler.Of(
			reconciler.Path(item, "lastLegalCase", "number"),
			reconciler.Path(item, "caseNumber"),
		)},
	}

	r, err := reconciler.New(reconciler.WithProvenance(false))
	require.NoError(t, err)

	first, second := &records.LegalEntity{}, &records.LegalEntity{}
	r.Apply(context.Background(), first, "g1", "list", plan)
	r.Apply(context.Background(), second, "g1", "list", plan)
	assert.Equal(t, first, second)
	assert.Equal(t, "А40-1/2020", first.CaseNumber)
	assert.Nil(t, r.Provenance().Map())
}

func TestApply_UnknownField(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	r, err := reconciler.New()
	require.NoError(t, err)

	n := r.Apply(ctx, &records.Person{}, "p1", "detail", reconciler.Plan{
		{Field: records.OGRN, Chain: reconciler.Of(reconciler.Value("x", "1"))},
	})
	assert.Zero(t, n)
	tl.AssertContains(t, "Unknown record field")
}

func TestNew_WithTracker(t *testing.T) {
	_, err := reconciler.New(reconciler.WithTracker(nil))
	require.Error(t, err)

	shared := provenance.NewTracker(true)
	r, err := reconciler.New(reconciler.WithProvenance(false), reconciler.WithTracker(shared))
	require.NoError(t, err)

	r.Apply(context.Background(), &records.Person{}, "p1", "list", reconciler.Plan{
		{Field: records.SNILS, Chain: reconciler.Of(reconciler.Value("snils", "123"))},
	})
	assert.Len(t, shared.Map(), 1)
}
