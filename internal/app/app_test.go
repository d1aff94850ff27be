package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cvsearch/internal/batch"
	"cvsearch/internal/config"
	"cvsearch/internal/expand"
	"cvsearch/internal/extract/extracttest"
	"cvsearch/internal/ocr"
)

// testConfig loads configuration the way the binaries do, with every path
// pointed into a temp dir and the language left at its default.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	t.Setenv("CVSEARCH_COLLECTION_DIR", filepath.Join(root, "curriculos"))
	t.Setenv("CVSEARCH_RESULTS_DIR", filepath.Join(root, "resultados"))
	t.Setenv("CVSEARCH_SYNONYMS_PATH", filepath.Join(root, "absent.yaml"))
	t.Setenv("CVSEARCH_LANGUAGE", "")
	t.Setenv("CVSEARCH_BATCH_KEYWORD", "")
	t.Setenv("CVSEARCH_POSTGRES_URL", "postgres://unused")
	t.Setenv("CVSEARCH_TEMPORAL_ADDRESS", "")
	return config.Load()
}

var noOCR = ocr.RecognizerFunc(func(context.Context, string) (string, error) { return "", nil })

func newLocalApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, nil, WithRecognizer(noOCR), LocalOnly())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNewBuildsLocalApp(t *testing.T) {
	cfg := testConfig(t)
	a := newLocalApp(t, cfg)

	_, err := os.Stat(cfg.CollectionDir)
	require.NoError(t, err, "collection dir is created")
	require.IsType(t, &batch.Copier{}, a.Batch)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.CollectionDir, "a.docx"), []byte("not a zip"), 0o644))
	resp, err := a.Searcher.Run(context.Background(), "limpeza")
	require.NoError(t, err)
	require.Equal(t, 1, resp.Scanned)
	require.Empty(t, resp.Results)
}

func TestNewUnknownLanguageFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Language = "klingon"
	a := newLocalApp(t, cfg)

	require.Equal(t, []string{"cozinheiros"}, a.Expander.Expand("Cozinheiros").Terms())
}

func TestDefaultLanguageStemsKeywords(t *testing.T) {
	cfg := testConfig(t)
	require.Equal(t, "portuguese", cfg.Language)
	a := newLocalApp(t, cfg)

	terms := a.Expander.Expand("Motoristas").Terms()
	require.GreaterOrEqual(t, len(terms), 2)
	require.Equal(t, "motoristas", terms[0])
	require.NotEqual(t, "motoristas", terms[1], "lemma must differ from the surface form")
	require.True(t, strings.HasPrefix("motoristas", terms[1]))
}

func TestSearchDOCXWithSynonym(t *testing.T) {
	cfg := testConfig(t)
	a := newLocalApp(t, cfg)
	extracttest.WriteDOCX(t, cfg.CollectionDir, "joana.docx",
		"Experiência com limpeza hospitalar", "Zeladoria de condomínio")
	extracttest.WriteDOCX(t, cfg.CollectionDir, "pedro.docx", "Operador de empilhadeira")

	resp, err := a.Searcher.Run(context.Background(), "limpeza")
	require.NoError(t, err)
	require.Equal(t, 2, resp.Scanned)
	require.Len(t, resp.Results, 1)

	got := resp.Results[0]
	require.Equal(t, "joana.docx", got.Filename)
	require.GreaterOrEqual(t, got.Occurrences, 2)
	require.GreaterOrEqual(t, got.Score, 6)
	require.Contains(t, got.Excerpt, "**limpeza**")
}

func TestSearchPDFWithLeadBonus(t *testing.T) {
	cfg := testConfig(t)
	a := newLocalApp(t, cfg)
	extracttest.WritePDF(t, cfg.CollectionDir, "carlos.pdf",
		"Motorista profissional categoria D", "Condutor de caminhão baú")
	extracttest.WriteFile(t, cfg.CollectionDir, "quebrado.pdf", "not a pdf")

	resp, err := a.Searcher.Run(context.Background(), "motorista")
	require.NoError(t, err)
	require.Equal(t, 2, resp.Scanned)
	require.Len(t, resp.Results, 1)

	got := resp.Results[0]
	require.Equal(t, "carlos.pdf", got.Filename)
	require.GreaterOrEqual(t, got.Occurrences, 2)
	require.GreaterOrEqual(t, got.Score, 6)
	require.Contains(t, got.Excerpt, "**motorista**")
}

func TestShippedSynonymsMatchBuiltIns(t *testing.T) {
	got, err := config.LoadSynonyms(filepath.Join("..", "..", "configs", "synonyms.yaml"), nil)
	require.NoError(t, err)
	require.Equal(t, map[string][]string(expand.DefaultSynonyms()), got)
}
