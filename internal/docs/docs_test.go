package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "data,tags,tui,web" {
		t.Fatalf("unexpected topics: %s", got)
	}
	body, ok := Get(" TAGS ")
	if !ok || !strings.HasPrefix(body, "# Tags") {
		t.Fatalf("expected tags topic; got ok=%v", ok)
	}
	if _, ok := Get("../docs"); ok {
		t.Fatalf("expected path-like topics to be rejected")
	}
}
