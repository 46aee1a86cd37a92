package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/job-scalper/internal/client"
	"github.com/job-scalper/internal/view"
)

const twoPostings = `[{"title":"Software Engineer","link":"https://x/1"},{"title":"Sales Rep","link":"https://x/2"}]`

// jobsServer records the decoded request bodies it receives.
func jobsServer(t *testing.T, status int, body string) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var requests []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		requests = append(requests, payload)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func execute(t *testing.T, cmdArgs ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--no-color", "--log-level", "error"}, cmdArgs...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchPrintsAllPostings(t *testing.T) {
	server, requests := jobsServer(t, http.StatusOK, twoPostings)

	out, err := execute(t, "--endpoint", server.URL, "search", "software", "engineer")
	require.NoError(t, err)

	assert.Contains(t, out, "Software Engineer")
	assert.Contains(t, out, "Sales Rep")
	assert.Contains(t, out, "2 of 2 shown")
	require.Len(t, *requests, 1)
	assert.Equal(t, map[string]any{"query": "software engineer", "isIntern": false}, (*requests)[0])
}

func TestSearchFilterAndCSV(t *testing.T) {
	server, _ := jobsServer(t, http.StatusOK, twoPostings)
	csvPath := filepath.Join(t.TempDir(), "posts.csv")

	out, err := execute(t, "--endpoint", server.URL, "search", "engineer", "--intern", "--filter", "Engineer", "--csv", csvPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Software Engineer")
	assert.NotContains(t, out, "Sales Rep")
	assert.Contains(t, out, "1 of 2 shown")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "title,link\nSoftware Engineer,https://x/1\n", string(data))
}

func TestSearchLevelsBody(t *testing.T) {
	server, requests := jobsServer(t, http.StatusOK, `[]`)

	out, err := execute(t, "--endpoint", server.URL, "search", "backend", "--level", "18", "--level", "17")
	require.NoError(t, err)

	assert.Contains(t, out, view.NoResultsMessage)
	require.Len(t, *requests, 1)
	assert.Equal(t, "backend", (*requests)[0]["query"])
	assert.Equal(t, []any{float64(17), float64(18)}, (*requests)[0]["ETCategories"])
}

func TestSearchSeedURLBody(t *testing.T) {
	server, requests := jobsServer(t, http.StatusOK, twoPostings)

	_, err := execute(t, "--endpoint", server.URL, "search", "--url", "https://www.pracuj.pl/praca/go;kw")
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	assert.Equal(t, map[string]any{"starturl": "https://www.pracuj.pl/praca/go;kw"}, (*requests)[0])
}

func TestSearchServerErrorWritesHTML(t *testing.T) {
	server, _ := jobsServer(t, http.StatusInternalServerError, `boom`)
	htmlPath := filepath.Join(t.TempDir(), "report.html")

	out, err := execute(t, "--endpoint", server.URL, "search", "engineer", "--html", htmlPath)
	require.ErrorIs(t, err, client.ErrRequestFailed)
	assert.Contains(t, out, view.FailedMessage)

	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), view.FailedMessage)
}

func TestSearchInvalidCriteriaSendsNothing(t *testing.T) {
	server, requests := jobsServer(t, http.StatusOK, twoPostings)

	out, err := execute(t, "--endpoint", server.URL, "search", "--level", "17")
	require.Error(t, err)
	assert.Contains(t, out, err.Error())
	assert.Empty(t, *requests)
}

func TestSearchRejectsConflictingFlags(t *testing.T) {
	_, err := execute(t, "search", "engineer", "--intern", "--url", "https://x")
	require.Error(t, err)
}

func TestLevelsListsCatalogue(t *testing.T) {
	out, err := execute(t, "levels")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 11)
	assert.Contains(t, out, " 17  Junior specialist")
}
