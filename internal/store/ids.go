package store

import (
	"strings"

	"appresp/internal/model"

	"github.com/google/uuid"
)

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// AssignMissingIDs gives every application and question with a blank id a
// fresh one, in place. It reports whether anything changed.
func AssignMissingIDs(apps []model.Application) bool {
	changed := false
	for i := range apps {
		a := &apps[i]
		if strings.TrimSpace(a.ID) == "" {
			a.ID = newID("app")
			changed = true
		}
		for j := range a.Questions {
			q := &a.Questions[j]
			if strings.TrimSpace(q.ID) == "" {
				q.ID = newID("q")
				changed = true
			}
		}
	}
	return changed
}
