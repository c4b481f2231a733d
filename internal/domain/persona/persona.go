// Package persona decides which agent and mentor answer a chat message.
// Everything here is pure: no I/O, no clocks, no randomness.
package persona

import "strings"

// Agent is the top level responder for a message.
type Agent string

const (
	AgentMindfulness Agent = "mindfulness"
	AgentWiseMentor  Agent = "wise_mentor"
)

func (a Agent) Valid() bool {
	return a == AgentMindfulness || a == AgentWiseMentor
}

// MentorKey identifies a wise mentor persona.
type MentorKey string

const (
	MentorStoic    MentorKey = "stoic"
	MentorBuddhist MentorKey = "buddhist"
	MentorSage     MentorKey = "sage"
	MentorDefault  MentorKey = "default"
)

// Persona describes a mentor voice.
type Persona struct {
	Key        MentorKey `json:"key"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Keywords   []string  `json:"keywords"`
	Philosophy string    `json:"philosophy"`
}

var mentors = map[MentorKey]Persona{
	MentorStoic: {
		Key:        MentorStoic,
		Name:       "Marcus Aurelius",
		Title:      "Stoic philosopher and Roman Emperor",
		Keywords:   []string{"stress", "control", "anxiety", "worry", "acceptance", "fear"},
		Philosophy: "Focus on what you can control. Accept what you cannot. Practice virtue and wisdom.",
	},
	MentorBuddhist: {
		Key:        MentorBuddhist,
		Name:       "Thich Nhat Hanh",
		Title:      "Zen Buddhist monk and mindfulness teacher",
		Keywords:   []string{"peace", "mindfulness", "present", "compassion", "suffering", "meditation"},
		Philosophy: "Be present in the moment. Practice compassion. Understand the nature of suffering.",
	},
	MentorSage: {
		Key:        MentorSage,
		Name:       "Confucius",
		Title:      "Chinese philosopher and teacher",
		Keywords:   []string{"relationship", "family", "work", "duty", "respect", "harmony"},
		Philosophy: "Cultivate virtue through learning. Respect relationships. Practice benevolence.",
	},
	MentorDefault: {
		Key:        MentorDefault,
		Name:       "The Wise Elder",
		Title:      "compassionate guide",
		Keywords:   []string{},
		Philosophy: "Draw upon your own wisdom and experiences. You know yourself better than anyone.",
	},
}

// detection order matters when a message matches several mentors
var detectionOrder = []MentorKey{MentorStoic, MentorBuddhist, MentorSage}

var (
	mindfulnessKeywords = []string{"feel", "feeling", "emotion", "sad", "angry", "frustrated", "upset", "hurt"}
	mentorKeywords      = []string{"advice", "what should", "help me", "stuck", "decision", "problem", "challenge"}
)

// Lookup returns the persona registered under key.
func Lookup(key MentorKey) (Persona, bool) {
	p, ok := mentors[key]
	return p, ok
}

// Default returns The Wise Elder.
func Default() Persona {
	return mentors[MentorDefault]
}

// All returns every persona in a stable order, default last.
func All() []Persona {
	out := make([]Persona, 0, len(mentors))
	for _, key := range detectionOrder {
		out = append(out, mentors[key])
	}
	return append(out, mentors[MentorDefault])
}

// Route picks the agent for a message. Emotional language wins over requests for advice.
func Route(message string) Agent {
	lower := strings.ToLower(message)
	if containsAny(lower, mindfulnessKeywords) != "" {
		return AgentMindfulness
	}
	if containsAny(lower, mentorKeywords) != "" {
		return AgentWiseMentor
	}
	return AgentWiseMentor
}

// DetectMentor finds the first mentor whose keywords occur in message.
func DetectMentor(message string) (Persona, string, bool) {
	lower := strings.ToLower(message)
	for _, key := range detectionOrder {
		p := mentors[key]
		if kw := containsAny(lower, p.Keywords); kw != "" {
			return p, kw, true
		}
	}
	return Persona{}, "", false
}

// Input is everything Select looks at.
type Input struct {
	Message         string
	RequestedMentor MentorKey
	PreviousPersona MentorKey
}

// Selection is the outcome of Select.
type Selection struct {
	Agent    Agent
	Persona  Persona
	Keywords []string
}

// PersonaID is the identifier recorded by analytics.
func (s Selection) PersonaID() string {
	if s.Agent == AgentMindfulness {
		return string(AgentMindfulness)
	}
	return string(s.Persona.Key)
}

// Select chooses agent and mentor. Mentor precedence: explicit request, keyword match,
// previous non-default persona, default.
func Select(in Input) Selection {
	sel := Selection{Agent: Route(in.Message), Keywords: []string{}}

	if p, ok := mentors[in.RequestedMentor]; ok && in.RequestedMentor != "" {
		sel.Persona = p
		if in.RequestedMentor != MentorDefault {
			sel.Agent = AgentWiseMentor
		}
		return sel
	}

	if p, kw, ok := DetectMentor(in.Message); ok {
		sel.Persona = p
		sel.Keywords = append(sel.Keywords, kw)
		return sel
	}

	if p, ok := mentors[in.PreviousPersona]; ok && in.PreviousPersona != MentorDefault {
		sel.Persona = p
		return sel
	}

	sel.Persona = Default()
	return sel
}

func containsAny(text string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}
