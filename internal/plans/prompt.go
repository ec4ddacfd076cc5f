package plans

import (
	"fmt"
	"strings"

	"github.com/vibetravel/vibetravel/internal/ai"
	"github.com/vibetravel/vibetravel/internal/models"
)

// maxLengthCorrection is subtracted from the plan length budget in the
// prompt so the model has headroom before the hard limit.
const maxLengthCorrection = 1000

// systemPromptBase instructs the model how to write travel plans.
const systemPromptBase = `You are a travel planning assistant. Create detailed travel plans that include:
- Daily activities and attractions
- Dining recommendations
- Accommodation suggestions
- Transportation tips
Don't include any information about the weather.
Use a friendly and engaging tone.
Be creative and provide unique suggestions.
Avoid generic or overly common recommendations.
Be concise and clear in your responses but add some flair (maybe some interesting facts or anecdotes).
The plan should be organized but involving some creativity.
Use bullet points or numbered lists for easy readability.
Include a summary at the end of the plan.
Do not include emojis.
Generate only the plan. Do not include any additional text, discussion, disclaimer, explanation or questions.`

// buildPrompt assembles the chat prompt for one generation request from
// the note's trip details, the user's preferences, and the plan length
// budget.
func buildPrompt(note *models.Note, profile *models.UserProfile, model string, maxLength int) ai.Prompt {
	return ai.Prompt{
		Messages: []ai.Message{
			{Role: "system", Content: buildSystemMessage(profile, maxLength)},
			{Role: "user", Content: buildUserMessage(note)},
		},
		Model: model,
	}
}

// buildSystemMessage folds the user's preferences and the length budget
// into the system instruction.
func buildSystemMessage(profile *models.UserProfile, maxLength int) string {
	var b strings.Builder
	b.WriteString(systemPromptBase)

	var prefLines []string
	if profile.Budget != nil {
		prefLines = append(prefLines, fmt.Sprintf("Budget level: %s", *profile.Budget))
	}
	if profile.PreferredPace != nil {
		prefLines = append(prefLines, fmt.Sprintf("Travel pace: %s", *profile.PreferredPace))
	}
	if profile.TravelStyle != nil {
		prefLines = append(prefLines, fmt.Sprintf("Travel style: %s", *profile.TravelStyle))
	}
	if len(prefLines) > 0 {
		b.WriteString("\n\nConsider these preferences:\n")
		b.WriteString(strings.Join(prefLines, "\n"))
	}

	fmt.Fprintf(&b, "\n\nTravel plan max length: %d characters\n\n", maxLength-maxLengthCorrection)
	return b.String()
}

// buildUserMessage describes the trip from the note's fields.
func buildUserMessage(note *models.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed travel plan for %s from %s to %s (%d days) for %d people.\n\n",
		note.Place,
		note.DateFrom.Format("2006-01-02"),
		note.DateTo.Format("2006-01-02"),
		note.TripDuration(),
		note.NumberOfPeople,
	)
	fmt.Fprintf(&b, "Trip title: %s\n\n", note.Title)

	if strings.TrimSpace(note.KeyIdeas) != "" {
		fmt.Fprintf(&b, "Additional notes/ideas: %s\n\n", note.KeyIdeas)
	}

	b.WriteString("Organize the plan by days and include specific recommendations.")
	return b.String()
}
