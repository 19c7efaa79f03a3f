package ai

import (
	"fmt"
	"strings"
)

const (
	plannerSystemPrompt = "You are an expert educational planner. Create a detailed study plan based on the syllabus content, " +
		"exam dates, and user preferences. Break down the material into logical study sessions with specific topics, durations, and dates."

	syllabusSystemPrompt = "You are an expert at analyzing and structuring educational content. " +
		"Extract key information from a syllabus into a structured format."

	tutorSystemPrompt = "You are an educational AI Tutor specializing in answering student questions on academic subjects. " +
		"Provide helpful, clear explanations that help the student understand concepts deeply."

	tutorReferenceHint = " Use the provided reference content to provide context-aware answers."

	jsonOnlyInstruction = "Important: Format your entire response as valid JSON with no extra text before or after it."
)

const studyPlanShape = `{
  "title": "Title of the study plan",
  "description": "Brief description of the plan",
  "sessions": [
    {
      "title": "Session title",
      "description": "What will be studied",
      "date": "YYYY-MM-DD",
      "duration": 60
    }
  ]
}`

const syllabusShape = `{
  "courseName": "Name of the course",
  "instructor": "Name of the instructor",
  "topics": [
    {
      "name": "Topic name",
      "description": "Topic description"
    }
  ],
  "examDates": [
    {
      "name": "Exam name",
      "date": "YYYY-MM-DD"
    }
  ]
}`

func orDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

func buildStudyPlanPrompt(syllabusText string, examDates []string, prefs PlanPreferences) string {
	hours := "Flexible"
	if prefs.HoursPerDay > 0 {
		hours = fmt.Sprintf("%g", prefs.HoursPerDay)
	}

	var b strings.Builder
	b.WriteString("Generate a study plan with the following information:\n\n")
	fmt.Fprintf(&b, "Syllabus Content: %s\n\n", syllabusText)
	fmt.Fprintf(&b, "Exam Dates: %s\n\n", orDefault(examDates, "None provided"))
	b.WriteString("User Preferences:\n")
	fmt.Fprintf(&b, "- Start Date: %s\n", prefs.StartDate)
	fmt.Fprintf(&b, "- End Date: %s\n", prefs.EndDate)
	fmt.Fprintf(&b, "- Hours Per Day: %s\n", hours)
	fmt.Fprintf(&b, "- Preferred Study Times: %s\n", orDefault(prefs.PreferredStudyTimes, "Not specified"))
	fmt.Fprintf(&b, "- Excluded Days: %s\n\n", orDefault(prefs.ExcludedDays, "None"))
	b.WriteString("Please respond with a JSON object with the following structure:\n")
	b.WriteString(studyPlanShape)
	b.WriteString("\n\n")
	b.WriteString(jsonOnlyInstruction)
	return b.String()
}

func buildSyllabusPrompt(content string) string {
	var b strings.Builder
	b.WriteString("Extract the following information from this syllabus content:\n\n")
	b.WriteString(content)
	b.WriteString("\n\nPlease respond with a JSON object with the following structure:\n")
	b.WriteString(syllabusShape)
	b.WriteString("\n\n")
	b.WriteString(jsonOnlyInstruction)
	return b.String()
}

func formatLabel(f SummaryFormat) string {
	if f == FormatParagraphs {
		return "short paragraphs"
	}
	return "bullet points"
}

func summarizerSystemPrompt(f SummaryFormat) string {
	return "You are an educational content summarizer. Create concise summaries that retain key information and concepts. " +
		"Format as " + formatLabel(f) + "."
}

func buildSummaryPrompt(content string, f SummaryFormat) string {
	return fmt.Sprintf("Summarize the following educational content:\n\n%s\n\nFormat as %s.", content, formatLabel(f))
}

// tutorSystem system turns for the tutor: the persona, then the reference content as its own turn
func tutorSystem(referenceContent string) []string {
	ref := strings.TrimSpace(referenceContent)
	if ref == "" {
		return []string{tutorSystemPrompt}
	}
	return []string{
		tutorSystemPrompt + tutorReferenceHint,
		"Reference content: " + ref,
	}
}
