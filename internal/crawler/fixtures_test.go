package crawler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/romangod6/recipe-crawler/internal/models"
	"github.com/stretchr/testify/require"
)

// testSite serves sitemap and page fixtures over HTTP. Sitemaps are served
// as application/xml, everything else as HTML.
type testSite struct {
	*httptest.Server

	mu    sync.Mutex
	pages map[string]string
	xml   map[string]bool
	hits  map[string]int
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	site := &testSite{
		pages: make(map[string]string),
		xml:   make(map[string]bool),
		hits:  make(map[string]int),
	}
	site.Server = httptest.NewServer(http.HandlerFunc(site.serve))
	t.Cleanup(site.Close)
	return site
}

func (s *testSite) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	body, ok := s.pages[r.URL.Path]
	isXML := s.xml[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if isXML {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	fmt.Fprint(w, body)
}

func (s *testSite) url(path string) string {
	return s.URL + path
}

func (s *testSite) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *testSite) addHTML(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = body
}

func (s *testSite) addIndex(t *testing.T, path string, childPaths ...string) {
	t.Helper()
	index := models.SitemapIndex{}
	for _, child := range childPaths {
		index.Sitemaps = append(index.Sitemaps, models.SitemapEntry{Loc: s.url(child)})
	}
	s.addXML(t, path, index)
}

func (s *testSite) addURLSet(t *testing.T, path string, pagePaths ...string) {
	t.Helper()
	set := models.Sitemap{}
	for _, page := range pagePaths {
		set.URLs = append(set.URLs, models.URL{Loc: s.url(page)})
	}
	s.addXML(t, path, set)
}

func (s *testSite) addXML(t *testing.T, path string, doc interface{}) {
	t.Helper()
	data, err := xml.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = xml.Header + string(data)
	s.xml[path] = true
}

// recipePage renders a page in the default site markup.
func recipePage(title string, ingredients ...string) string {
	var items strings.Builder
	for _, ing := range ingredients {
		fmt.Fprintf(&items, "<li>%s</li>\n", ing)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta name="description" content="A simple %[1]s recipe">
  <title>%[1]s</title>
</head>
<body>
  <h1>%[1]s</h1>
  <div class="recipe-image"><img src="/img/%[1]s.jpg"></div>
  <ul class="recipe-ingredients__list">
%[2]s  </ul>
  <ol>
    <li class="recipe-directions__item">Bake the %[1]s until golden.</li>
  </ol>
</body>
</html>`, title, items.String())
}
