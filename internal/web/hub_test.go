package web

import (
	"strings"
	"testing"
)

func TestResourceHub_BroadcastDoesNotBlock(t *testing.T) {
	h := newResourceHub()
	ch, cancel := h.subscribe()
	defer cancel()

	for i := 0; i < 100; i++ {
		h.broadcast()
	}
	if got := h.subscribers(); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}
	select {
	case <-ch:
	default:
		t.Fatalf("expected a pending signal")
	}
}

func TestRenderResponseHTML(t *testing.T) {
	got := string(renderResponseHTML("First line\nsecond line :smile:"))
	for _, want := range []string{"<p>", "<br"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, ":smile:") {
		t.Fatalf("expected emoji shortcode to be rendered: %q", got)
	}
	if got := renderResponseHTML("  "); got != "" {
		t.Fatalf("expected empty output for blank response, got %q", got)
	}
	if got := string(renderResponseHTML("<script>x</script>")); strings.Contains(got, "<script>") {
		t.Fatalf("raw html must not pass through: %q", got)
	}
	got = string(renderResponseHTML("# Summary\n\n## Detail\n\n###### Tiny"))
	for _, want := range []string{"<h4", "<h5", "<h6"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	for _, unwanted := range []string{"<h1", "<h2", "<h3"} {
		if strings.Contains(got, unwanted) {
			t.Fatalf("headings should be demoted, found %q in %q", unwanted, got)
		}
	}
}
