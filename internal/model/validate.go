package model

import (
	"fmt"
	"strings"
)

// ValidationError lists every identity problem found in a collection.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid collection: " + strings.Join(e.Problems, "; ")
}

// Validate checks the invariants of a collection: application ids are unique
// and non-empty, question ids are unique and non-empty within their
// application, every status is a known lowercase value, and every tag is
// non-blank and appears once per question. Question ids may repeat across
// applications.
func Validate(apps []Application) error {
	var problems []string
	seenApps := map[string]bool{}
	for i, a := range apps {
		if strings.TrimSpace(a.ID) == "" {
			problems = append(problems, fmt.Sprintf("application #%d has an empty id", i+1))
		} else if seenApps[a.ID] {
			problems = append(problems, fmt.Sprintf("duplicate application id %q", a.ID))
		}
		seenApps[a.ID] = true

		if !a.Status.Valid() {
			problems = append(problems, fmt.Sprintf("application %q: invalid status %q", a.ID, a.Status))
		}

		seenQuestions := map[string]bool{}
		for j, q := range a.Questions {
			if strings.TrimSpace(q.ID) == "" {
				problems = append(problems, fmt.Sprintf("application %q question #%d has an empty id", a.ID, j+1))
				continue
			}
			if seenQuestions[q.ID] {
				problems = append(problems, fmt.Sprintf("application %q: duplicate question id %q", a.ID, q.ID))
			}
			seenQuestions[q.ID] = true

			seenTags := map[string]bool{}
			for _, t := range q.Tags {
				switch {
				case strings.TrimSpace(t) == "":
					problems = append(problems, fmt.Sprintf("application %q question %q has a blank tag", a.ID, q.ID))
				case seenTags[t]:
					problems = append(problems, fmt.Sprintf("application %q question %q: duplicate tag %q", a.ID, q.ID, t))
				}
				seenTags[t] = true
			}
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
