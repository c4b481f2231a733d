package council

import (
	"fmt"
	"strings"

	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/persona"
)

const (
	firstConversationContext = "This appears to be our first conversation."

	fallbackJournalInsight   = "Thank you for sharing."
	fallbackReflectInsight   = "Thank you for sharing your thoughts. May this peace stay with you."
	fallbackMindfulnessReply = "I'm here with you... Take a slow breath. Whatever you are feeling right now is welcome here."
	fallbackMentorReply      = "Let us sit with this for a moment. What part of this lies within your control, and what would it mean to let the rest be?"

	reflectionPrefix = "[Meditation Reflection]\n"
	meditationTopic  = "meditation"
	maxQuestions     = 3
	historyTurns     = 6
)

var fallbackQuestions = []string{
	"How did that make you feel in the moment?",
	"What do you think triggered these thoughts?",
	"Is there anything else you'd like to explore about this?",
}

const mindfulnessSystem = `You are The Empath, a compassionate mindfulness guide.
Your role is to:
1. Help users identify and name their emotions
2. Provide a safe space for venting
3. Offer gentle validation without judgment
4. Suggest simple breathing exercises if appropriate

Keep responses warm, concise (2-3 sentences), and focused on emotional awareness.`

// mentorContext renders recalled entries as prompt context.
func mentorContext(entries []journal.Entry) string {
	if len(entries) == 0 {
		return firstConversationContext
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = "- " + e.Content
	}
	return "Based on what you've shared before:\n\n" + strings.Join(lines, "\n\n")
}

func mentorSystem(p persona.Persona, context string) string {
	return fmt.Sprintf(`You are %[1]s, a %[2]s.

%[3]s

Your philosophy: %[4]s

Respond to the user's message in the voice and style of %[1]s, drawing upon:
1. Their past experiences and patterns (from the context above)
2. Your philosophical wisdom
3. Specific, actionable guidance

Keep your response concise (3-4 sentences) but profound. Speak as %[1]s would speak.`, p.Name, p.Title, context, p.Philosophy)
}

func withPersonalization(system, personalization string) string {
	if personalization == "" {
		return system
	}
	return system + "\n\nAbout the person you are speaking with:\n" + personalization
}

// chatPrompt renders recent turns followed by the new message.
func chatPrompt(history []convstate.Turn, message, speaker string) string {
	var b strings.Builder
	start := 0
	if len(history) > historyTurns {
		start = len(history) - historyTurns
	}
	for _, turn := range history[start:] {
		role := "User"
		if turn.Role == "assistant" {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", role, turn.Content)
	}
	fmt.Fprintf(&b, "User: %s\n\n%s:", message, speaker)
	return b.String()
}

func interviewPrompt(content string, previous []journal.Entry) string {
	context := ""
	if len(previous) > 0 {
		lines := make([]string, 0, len(previous))
		for i, e := range previous {
			if i == maxQuestions {
				break
			}
			lines = append(lines, "- "+truncate(e.Content, 200)+"...")
		}
		context = "\nPREVIOUS JOURNAL ENTRIES (for context):\n" + strings.Join(lines, "\n") + "\n"
	}

	return fmt.Sprintf(`You are a thoughtful journal companion conducting a deep, empathetic interview.
Your goal is to help the user explore their thoughts and feelings more deeply.
%s
CURRENT ENTRY:
%s

ANALYZE THE ENTRY AND:
1. Identify the key emotional themes or significant points
2. Generate 2-3 thoughtful follow-up questions that:
   - Help them explore their feelings more deeply
   - Uncover underlying patterns or beliefs
   - Encourage self-reflection
   - Are open-ended and non-judgmental

3. Provide a brief insight about what you noticed in their entry

FORMAT YOUR RESPONSE EXACTLY LIKE THIS:
INSIGHT: [1-2 sentence observation about their entry]

QUESTIONS:
1. [First follow-up question]
2. [Second follow-up question]
3. [Third follow-up question - optional]

Remember:
- Be warm and curious, not clinical
- Ask questions that go deeper, not just surface level
- Notice emotions they might not have explicitly named
- Look for patterns if you have context from previous entries`, context, content)
}

// parseInterview reads the INSIGHT / QUESTIONS layout requested by interviewPrompt.
func parseInterview(text string) (string, []string) {
	var insight string
	questions := []string{}
	inQuestions := false

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "INSIGHT:"):
			insight = strings.TrimSpace(strings.TrimPrefix(line, "INSIGHT:"))
		case strings.HasPrefix(line, "QUESTIONS:"):
			inQuestions = true
		case inQuestions && line != "" && (line[0] >= '0' && line[0] <= '9' || line[0] == '-'):
			if q := strings.TrimSpace(strings.TrimLeft(line, "0123456789.-) ")); q != "" {
				questions = append(questions, q)
			}
		}
	}

	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return insight, questions
}

// qaBlock renders answered followups as "Q: ...\nA: ..." lines.
func qaBlock(pairs []QA) string {
	blocks := make([]string, len(pairs))
	for i, p := range pairs {
		blocks[i] = fmt.Sprintf("Q: %s\nA: %s", p.Question, p.Answer)
	}
	return strings.Join(blocks, "\n")
}

func synthesisPrompt(original, followups string) string {
	return fmt.Sprintf(`You are helping to create a rich, synthesized journal entry.

ORIGINAL ENTRY:
%s

FOLLOW-UP CONVERSATION:
%s

Create a cohesive, first-person journal entry that weaves together all of this information.
Keep the user's voice and tone. Don't add interpretations they didn't express.
The result should read like a single, thoughtful journal entry.

Write 2-4 paragraphs maximum.`, original, followups)
}

func entryInsightPrompt(entry string) string {
	return "Based on this journal entry and self-exploration, provide a brief, warm observation " +
		"(1-2 sentences) that might help the person see a pattern or feel understood:\n\n" + entry
}

func reflectionPrompt(content string) string {
	return fmt.Sprintf(`Someone just finished a meditation and shared this reflection:

"%s"

Write a brief, warm response (2-3 sentences) that:
- Acknowledges what they shared with genuine care
- Reflects back something meaningful you noticed
- Offers a gentle observation or affirmation

Keep it personal and soft, not clinical. Like a kind friend responding.`, content)
}

// mirrorEntry is the journal text written for a mirrored meditation reflection.
func mirrorEntry(content, insight string) string {
	return reflectionPrefix + content + "\n\nInsight: " + insight
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
