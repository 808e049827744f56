// Package prompt builds the three prompts of the story pipeline: story
// generation, judging, and revision. All builders are pure.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/valpere/lullaby/internal/rubric"
)

// Roles are the seven narrative roles a story is asked to follow, one per paragraph.
var Roles = []string{
	"Setup: introduce characters and setting",
	"Normal routine: show everyday life",
	"Problem: a gentle challenge appears",
	"First attempt: an idea that does not fully work",
	"Learning moment: characters adjust their approach",
	"Resolution: the problem is solved positively",
	"Lesson: reflect and end calmly",
}

// criteria describes each rubric category to the judge.
var criteria = map[rubric.Category]string{
	rubric.AgeAppropriateness:  "Age appropriateness (vocabulary and concepts suit ages 5 to 10)",
	rubric.EmotionalSafety:     "Emotional safety (no fear, violence, or distress)",
	rubric.StoryStructure:      "Clear story structure: 7 paragraphs, each serving a distinct role (setup, normal routine, problem, first attempt, learning moment, resolution, lesson)",
	rubric.LessonClarity:       "Clear positive lesson or moral",
	rubric.LanguageSimplicity:  "Simple, easy-to-follow language",
	rubric.NarrativeEngagement: "Narrative engagement (a gentle story a child wants to keep listening to)",
}

// Story builds the generation prompt. The request is embedded verbatim.
func Story(request string) string {
	var sb strings.Builder
	sb.WriteString("You are a gentle and creative storyteller for children aged 5 to 10.\n\n")
	sb.WriteString("Your task is to write a bedtime story based on the user's request.\n\n")

	sb.WriteString("CRITICAL SAFETY RULES:\n")
	sb.WriteString("- The story MUST be emotionally safe.\n")
	sb.WriteString("- No violence, hitting, bullying, or harm.\n")
	sb.WriteString("- Unsafe requests must be reinterpreted safely. Never refuse; write a gentle story instead.\n\n")

	sb.WriteString("STORY STRUCTURE REQUIREMENTS:\n")
	sb.WriteString(fmt.Sprintf("- The story MUST have %d short paragraphs:\n", len(Roles)))
	for i, role := range Roles {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, role))
	}
	sb.WriteString("- Each paragraph should have 3-5 simple sentences.\n")
	sb.WriteString("- The story should feel calm and unhurried.\n\n")

	sb.WriteString("STYLE REQUIREMENTS:\n")
	sb.WriteString("- Tone: warm, calm, and positive\n")
	sb.WriteString("- Language: simple words, short sentences\n")
	sb.WriteString(fmt.Sprintf("- Length: %d short paragraphs\n", len(Roles)))
	sb.WriteString("- End with a clear, positive lesson\n\n")

	sb.WriteString("User request:\n")
	sb.WriteString(fence(request))
	sb.WriteString("\n\nOnly return the story. Do not add a title, preamble, or explanation.\n")
	return sb.String()
}

// Judge builds the evaluation prompt for story.
func Judge(story string) string {
	var sb strings.Builder
	sb.WriteString("You are a careful evaluator of children's bedtime stories for ages 5 to 10.\n\n")
	sb.WriteString("Evaluate the story below using these criteria:\n")
	for i, c := range rubric.Categories {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, criteria[c]))
	}

	sb.WriteString("\nStory:\n")
	sb.WriteString(fence(story))

	sb.WriteString("\n\nRespond with ONLY a JSON object, no markdown and no other text. ")
	sb.WriteString("It must contain exactly these keys:\n")
	for _, c := range rubric.Categories {
		sb.WriteString(fmt.Sprintf("- %s: \"pass\" or \"fail\"\n", c))
	}
	sb.WriteString("- suggestions: a short list of concrete improvements (an empty list if none)\n")
	return sb.String()
}

// Revision builds the prompt asking for one improved draft of story.
func Revision(story string, verdict rubric.Verdict) string {
	feedback, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		// Verdict holds only strings; marshalling cannot fail in practice.
		feedback = []byte(fmt.Sprintf("%+v", verdict))
	}

	var sb strings.Builder
	sb.WriteString("You are improving a bedtime story for a child aged 5 to 10.\n\n")
	sb.WriteString("Here is the original story:\n")
	sb.WriteString(fence(story))
	sb.WriteString("\n\nHere is feedback from a story evaluator:\n")
	sb.Write(feedback)
	sb.WriteString("\n\nRevise the story to address the feedback.\n")
	sb.WriteString("Guidelines:\n")
	sb.WriteString("- Keep the story gentle and emotionally safe\n")
	sb.WriteString("- Use simple words and short sentences\n")
	sb.WriteString("- Ensure a clear beginning, middle, and end\n")
	sb.WriteString("- End with a positive lesson\n\n")
	sb.WriteString("Return ONLY the revised story.\n")
	return sb.String()
}

func fence(text string) string {
	return `"""` + text + `"""`
}
