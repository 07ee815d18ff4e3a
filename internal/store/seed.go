package store

import (
	"time"

	"appresp/internal/model"
)

// KnownTags is the default tag list offered for filtering, in display order.
var KnownTags = []string{
	"Leadership", "Teamwork", "Problem Solving", "Research",
	"Python", "JavaScript", "React", "Node.js", "Machine Learning",
	"Web Development", "Teaching", "Service", "Community Impact",
	"Healthcare", "Social Impact", "Perseverance",
}

func seedTime(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// MockApplications returns a fresh copy of the built-in sample collection.
func MockApplications() []model.Application {
	return []model.Application{
		{
			ID:            "1",
			Name:          "Google Software Engineering Internship",
			Purpose:       "Internship",
			DateSubmitted: seedTime("2025-01-15T10:30:00"),
			Status:        model.StatusSubmitted,
			Notes:         model.StringPtr("Applied through university career portal"),
			Questions: []model.Question{
				{
					ID:           "q1",
					QuestionText: "Describe a time when you demonstrated leadership in a technical project.",
					Response:     "During my junior year, I led a team of four students in developing a full-stack web application for our local community center. I organized weekly standups, delegated tasks based on each member's strengths, and implemented a code review process that improved our code quality by 40%. When we faced a critical bug two days before the deadline, I coordinated a debugging session and we successfully deployed on time.",
					Tags:         []string{"Leadership", "Teamwork", "Web Development", "Problem Solving"},
				},
				{
					ID:           "q2",
					QuestionText: "What programming languages and technologies are you most comfortable with?",
					Response:     "I have strong proficiency in Python, JavaScript, and Java. I've built multiple projects using React and Node.js, and have experience with databases like PostgreSQL and MongoDB. I'm also comfortable with Git, Docker, and CI/CD pipelines. Recently, I've been exploring machine learning with TensorFlow.",
					Tags:         []string{"Python", "JavaScript", "React", "Node.js", "Machine Learning"},
				},
			},
		},
		{
			ID:            "2",
			Name:          "Rhodes Scholarship Application",
			Purpose:       "Scholarship",
			DateSubmitted: seedTime("2025-01-20T14:00:00"),
			Status:        model.StatusDraft,
			Notes:         model.StringPtr("Need to revise personal statement"),
			Questions: []model.Question{
				{
					ID:           "q3",
					QuestionText: "Describe your commitment to service and how you have made a difference in your community.",
					Response:     "For the past three years, I've volunteered at a local coding bootcamp teaching underrepresented high school students programming fundamentals. I developed a curriculum that has now taught over 150 students, with 60% going on to pursue computer science degrees. I also founded a mentorship program pairing students with tech professionals.",
					Tags:         []string{"Service", "Leadership", "Teaching", "Community Impact"},
				},
			},
		},
		{
			ID:            "3",
			Name:          "NSF Graduate Research Fellowship",
			Purpose:       "Fellowship",
			DateSubmitted: seedTime("2025-01-10T09:15:00"),
			Status:        model.StatusAccepted,
			Notes:         model.StringPtr("Received acceptance letter on Jan 28"),
			Questions: []model.Question{
				{
					ID:           "q4",
					QuestionText: "Describe your research interests and how they align with NSF's mission.",
					Response:     "My research focuses on developing accessible AI tools for early disease detection in underserved communities. I've published two papers on using machine learning for medical image analysis and believe this aligns with NSF's goal of advancing scientific progress for societal benefit.",
					Tags:         []string{"Research", "Machine Learning", "Healthcare", "Social Impact"},
				},
				{
					ID:           "q5",
					QuestionText: "Describe a time when you had to overcome a significant challenge in your research.",
					Response:     "During my summer research project, our dataset had significant bias issues that were affecting model accuracy. I spent two months researching bias mitigation techniques, implemented three different approaches, and ultimately improved our model's fairness metrics by 35% while maintaining accuracy.",
					Tags:         []string{"Research", "Problem Solving", "Machine Learning", "Perseverance"},
				},
			},
		},
	}
}
