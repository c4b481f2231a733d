package persona_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janhq/mirror-server/internal/domain/persona"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    persona.Agent
	}{
		{name: "emotional language", message: "I feel so tired today", want: persona.AgentMindfulness},
		{name: "emotion beats advice", message: "I'm upset, what should I do?", want: persona.AgentMindfulness},
		{name: "advice", message: "I need advice on a decision", want: persona.AgentWiseMentor},
		{name: "no keywords", message: "hello there", want: persona.AgentWiseMentor},
		{name: "case insensitive", message: "I am SAD", want: persona.AgentMindfulness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, persona.Route(tt.message))
		})
	}
}

func TestDetectMentorOrder(t *testing.T) {
	p, kw, ok := persona.DetectMentor("work keeps giving me anxiety")
	assert.True(t, ok)
	assert.Equal(t, persona.MentorStoic, p.Key)
	assert.Equal(t, "anxiety", kw)

	p, _, ok = persona.DetectMentor("my family needs harmony")
	assert.True(t, ok)
	assert.Equal(t, persona.MentorSage, p.Key)

	_, _, ok = persona.DetectMentor("just saying hi")
	assert.False(t, ok)
}

func TestSelectPrecedence(t *testing.T) {
	t.Run("requested mentor wins", func(t *testing.T) {
		sel := persona.Select(persona.Input{Message: "so much stress", RequestedMentor: persona.MentorBuddhist})
		assert.Equal(t, persona.MentorBuddhist, sel.Persona.Key)
		assert.Equal(t, persona.AgentWiseMentor, sel.Agent)
		assert.Empty(t, sel.Keywords)
	})

	t.Run("unknown request falls through to keywords", func(t *testing.T) {
		sel := persona.Select(persona.Input{Message: "so much stress", RequestedMentor: "jester"})
		assert.Equal(t, persona.MentorStoic, sel.Persona.Key)
		assert.Equal(t, []string{"stress"}, sel.Keywords)
	})

	t.Run("previous persona is sticky", func(t *testing.T) {
		sel := persona.Select(persona.Input{Message: "tell me more", PreviousPersona: persona.MentorSage})
		assert.Equal(t, persona.MentorSage, sel.Persona.Key)
	})

	t.Run("default otherwise", func(t *testing.T) {
		sel := persona.Select(persona.Input{Message: "tell me more", PreviousPersona: persona.MentorDefault})
		assert.Equal(t, persona.MentorDefault, sel.Persona.Key)
		assert.Equal(t, "The Wise Elder", sel.Persona.Name)
	})
}

func TestSelectionPersonaID(t *testing.T) {
	assert.Equal(t, "mindfulness", persona.Select(persona.Input{Message: "I feel lost"}).PersonaID())
	assert.Equal(t, "stoic", persona.Select(persona.Input{Message: "how do I handle fear"}).PersonaID())
}

func TestAllListsDefaultLast(t *testing.T) {
	all := persona.All()
	assert.Len(t, all, 4)
	assert.Equal(t, persona.MentorDefault, all[len(all)-1].Key)
}
