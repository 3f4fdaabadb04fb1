package view_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notification/pkg/notification"
	"github.com/dmitrymomot/notification/pkg/notification/view"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(ctx, &sb))
	return sb.String()
}

func newManager() *notification.Manager {
	return notification.New(notification.Config{
		Types:  []string{"success", "error"},
		Format: `<p class=":type">:message</p>`,
	})
}

func TestComponents(t *testing.T) {
	t.Parallel()

	m := newManager()
	bag := m.Default()
	bag.Instant("success", "Saved").Instant("error", "Failed")
	ctx := context.Background()

	assert.Equal(t, `<p class="success">Saved</p>`, render(t, ctx, view.Show(bag, "success")))
	assert.Equal(t, `<p class="success">Saved</p><p class="error">Failed</p>`, render(t, ctx, view.ShowAll(bag)))
	assert.Equal(t, `<p class="error">Failed</p><p class="success">Saved</p>`, render(t, ctx, view.Group(bag, "error", "success")))
	assert.Empty(t, bag.GroupingForRender())
}

func TestContainer(t *testing.T) {
	t.Parallel()

	m := newManager()
	m.Container("sidebar").Instant("success", "Hi")

	ctx := notification.WithContext(context.Background(), m)
	assert.Equal(t, `<p class="success">Hi</p>`, render(t, ctx, view.Container("sidebar")))
	assert.Empty(t, render(t, ctx, view.Container("")))
	assert.Empty(t, render(t, context.Background(), view.Container("sidebar")))
}

func TestStream(t *testing.T) {
	t.Parallel()

	d := notification.NewBroadcastDispatcher(10)
	defer d.Close()

	srv := httptest.NewServer(view.Stream(d, "default", "#notifications"))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	// Publish until the subscriber is connected and the first event arrives.
	go func() {
		m := notification.New(notification.Config{Types: []string{"info"}, Format: `<li>:message</li>`},
			notification.WithManagerDispatcher(d))
		tick := time.NewTicker(20 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				m.Default().ClearAll().Instant("info", "live update")
			}
		}
	}()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	var event strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" && event.Len() > 0 {
			break
		}
		event.WriteString(line + "\n")
	}

	got := event.String()
	assert.Contains(t, got, "event: datastar-patch-elements")
	assert.Contains(t, got, "selector #notifications")
	assert.Contains(t, got, "mode append")
	assert.Contains(t, got, "<li>live update</li>")
}
