package crawler

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/romangod6/recipe-crawler/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireChrome(t *testing.T) {
	t.Helper()
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("no Chrome binary on PATH")
}

func newTestChromeRenderer(t *testing.T, readySelector string, timeout time.Duration) *ChromeRenderer {
	t.Helper()
	r := NewChromeRenderer(ChromeConfig{
		UserAgent:     "test-agent",
		Headless:      true,
		ReadySelector: readySelector,
		Timeout:       timeout,
	}, utils.NewDiscardLogger())
	t.Cleanup(r.Close)
	return r
}

func TestChromeRendererWaitsForReadySelector(t *testing.T) {
	requireChrome(t)
	site := newTestSite(t)
	site.addHTML("/recipes/soup/", recipePage("Tomato Soup", "4 tomatoes"))

	html, err := newTestChromeRenderer(t, "h1", 20*time.Second).Render(context.Background(), site.url("/recipes/soup/"))
	require.NoError(t, err)
	assert.Contains(t, html, "Tomato Soup")
}

func TestChromeRendererReadinessTimeout(t *testing.T) {
	requireChrome(t)
	site := newTestSite(t)
	site.addHTML("/recipes/never-ready/", `<html><body><p>still loading</p></body></html>`)

	_, err := newTestChromeRenderer(t, "h1.never-present", 2*time.Second).Render(context.Background(), site.url("/recipes/never-ready/"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrRenderFailure))
	assert.False(t, errors.Is(err, context.Canceled), "parent context was never cancelled")
}

func TestChromeRendererCanceledContext(t *testing.T) {
	requireChrome(t)
	site := newTestSite(t)
	site.addHTML("/recipes/never-ready/", `<html><body><p>still loading</p></body></html>`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestChromeRenderer(t, "h1.never-present", 10*time.Second).Render(ctx, site.url("/recipes/never-ready/"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrRenderFailure))
	assert.True(t, errors.Is(err, context.Canceled))
}
