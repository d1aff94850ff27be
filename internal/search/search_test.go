package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cvsearch/internal/collection"
	"cvsearch/internal/expand"
	"cvsearch/internal/models"
)

// mapExtractor serves text by base filename and counts calls.
type mapExtractor struct {
	texts map[string]string
	calls int
}

func (m *mapExtractor) Extract(_ context.Context, path string) string {
	m.calls++
	return strings.ToLower(m.texts[filepath.Base(path)])
}

type recorderFunc func(ctx context.Context, run models.SearchRun) error

func (f recorderFunc) Insert(ctx context.Context, run models.SearchRun) error { return f(ctx, run) }

func newCollection(t *testing.T, names ...string) *collection.Store {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	return collection.NewStore(dir)
}

func newExpander() *expand.Expander {
	return expand.New(expand.IdentityLemmatizer{}, expand.DefaultSynonyms())
}

func TestScenarioSynonymMatch(t *testing.T) {
	store := newCollection(t, "joana.docx")
	ext := &mapExtractor{texts: map[string]string{"joana.docx": "Trabalho com limpeza e zeladoria."}}

	results, err := New(store, ext, newExpander()).Search(context.Background(), "limpeza")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "joana.docx", results[0].Filename)
	require.GreaterOrEqual(t, results[0].Occurrences, 2)
	require.NotEqual(t, "(no excerpt found)", results[0].Excerpt)
	require.Contains(t, results[0].Excerpt, "**limpeza**")
}

func TestScenarioLeadBonus(t *testing.T) {
	store := newCollection(t, "carlos.pdf")
	ext := &mapExtractor{texts: map[string]string{"carlos.pdf": "Objetivo: vaga de motorista."}}

	results, err := New(store, ext, newExpander()).Search(context.Background(), "motorista")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.GreaterOrEqual(t, results[0].Score, 6)
}

func TestScenarioEmptyKeywordScansNothing(t *testing.T) {
	store := newCollection(t, "a.pdf", "b.pdf")
	ext := &mapExtractor{}

	for _, kw := range []string{"", "   ", "\t\n"} {
		_, err := New(store, ext, newExpander()).Run(context.Background(), kw)
		require.True(t, errors.Is(err, ErrEmptyQuery))
	}
	require.Equal(t, 0, ext.calls)
}

func TestScenarioFailedExtractionIsIsolated(t *testing.T) {
	store := newCollection(t, "corrupt.pdf", "ok.pdf")
	// corrupt.pdf has no entry, so it extracts to "" like a failed read
	ext := &mapExtractor{texts: map[string]string{"ok.pdf": "auxiliar de limpeza"}}

	resp, err := New(store, ext, newExpander()).Run(context.Background(), "limpeza")
	require.NoError(t, err)
	require.Equal(t, 2, resp.Scanned)
	require.Equal(t, 2, ext.calls)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "ok.pdf", resp.Results[0].Filename)
}

func TestRunSortsByScoreStable(t *testing.T) {
	store := newCollection(t, "a.pdf", "b.pdf", "c.pdf", "d.pdf")
	far := strings.Repeat("x", 600)
	ext := &mapExtractor{texts: map[string]string{
		"a.pdf": far + " faxina",
		"b.pdf": "limpeza limpeza",
		"c.pdf": far + " zeladoria",
		"d.pdf": "sem relação",
	}}

	resp, err := New(store, ext, newExpander()).Run(context.Background(), "Limpeza")
	require.NoError(t, err)

	names := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		names = append(names, r.Filename)
	}
	require.Equal(t, []string{"b.pdf", "a.pdf", "c.pdf"}, names)
	require.Equal(t, 2+5, resp.Results[0].Score)
	require.Equal(t, "limpeza", resp.Keyword)
	require.Equal(t, []string{"limpeza", "faxina", "faxineira", "zeladoria"}, resp.Variants)
	require.NotEmpty(t, resp.RunID)
}

func TestRunSkipsSubdirectories(t *testing.T) {
	store := newCollection(t, "a.pdf")
	require.NoError(t, os.Mkdir(filepath.Join(store.Root(), "antigos"), 0o755))
	ext := &mapExtractor{texts: map[string]string{"a.pdf": "porteiro"}}

	resp, err := New(store, ext, newExpander()).Run(context.Background(), "segurança")
	require.NoError(t, err)
	require.Equal(t, 1, resp.Scanned)
	require.Equal(t, 1, ext.calls)
	require.Len(t, resp.Results, 1)
}

func TestRunNoResultsIsNotAnError(t *testing.T) {
	store := newCollection(t, "a.pdf")
	ext := &mapExtractor{texts: map[string]string{"a.pdf": "cozinheiro"}}

	resp, err := New(store, ext, newExpander()).Run(context.Background(), "motorista")
	require.NoError(t, err)
	require.NotNil(t, resp.Results)
	require.Empty(t, resp.Results)
}

func TestRunRecordsSummary(t *testing.T) {
	store := newCollection(t, "a.pdf", "b.pdf")
	ext := &mapExtractor{texts: map[string]string{"a.pdf": "estoque", "b.pdf": "almoxarifado estoque"}}

	var got models.SearchRun
	rec := recorderFunc(func(_ context.Context, run models.SearchRun) error {
		got = run
		return errors.New("db down")
	})

	resp, err := New(store, ext, newExpander(), WithRecorder(rec)).Run(context.Background(), "estoque")
	require.NoError(t, err, "recorder failures never fail the search")
	require.Equal(t, resp.RunID, got.RunID)
	require.Equal(t, 2, got.Scanned)
	require.Equal(t, 2, got.Matched)
	require.Equal(t, "b.pdf", got.TopFile)
}

func TestRunMissingCollection(t *testing.T) {
	store := collection.NewStore(filepath.Join(t.TempDir(), "missing"))
	_, err := New(store, &mapExtractor{}, newExpander()).Run(context.Background(), "limpeza")
	require.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	store := newCollection(t, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(store, &mapExtractor{}, newExpander()).Run(ctx, "limpeza")
	require.True(t, errors.Is(err, context.Canceled))
}
