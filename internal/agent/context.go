package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodfoods/goodfoods/internal/directory"
	"github.com/goodfoods/goodfoods/internal/schema"
)

// PromptContext assembles system prompts and message lists for the LLM.
type PromptContext struct {
	dir     *directory.Directory
	persona Persona
	now     func() time.Time
}

// NewPromptContext creates a PromptContext over the branch directory.
// personaPath may be "" when no PERSONA.md override is configured.
func NewPromptContext(dir *directory.Directory, personaPath string) *PromptContext {
	return &PromptContext{
		dir:     dir,
		persona: LoadPersona(personaPath),
		now:     time.Now,
	}
}

// WithClock overrides the prompt's clock. Used in tests.
func (pc *PromptContext) WithClock(now func() time.Time) *PromptContext {
	pc.now = now
	return pc
}

// Persona returns the loaded persona so callers can apply its
// model and temperature overrides to the agent settings.
func (pc *PromptContext) Persona() Persona {
	return pc.persona
}

// BuildSystemPrompt assembles the full system prompt: brand identity,
// reservation workflow, current date, and the optional persona body.
func (pc *PromptContext) BuildSystemPrompt() string {
	now := pc.now()
	tomorrow := now.AddDate(0, 0, 1)

	cities := pc.dir.Cities()
	cityLine := "major Indian cities"
	if len(cities) > 0 {
		cityLine = strings.Join(cities, ", ")
	}

	prompt := fmt.Sprintf(`You are an AI assistant for GoodFoods, a premium casual dining restaurant chain with %d branches across India.

**Your Role:**
- Help customers find the best GoodFoods branch for their needs
- Make reservations at their preferred location
- Suggest alternative branches when needed

**GoodFoods Brand:**
- Cuisines: Italian, North Indian, Continental, Asian Fusion
- Price Range: ₹₹₹ (Premium casual dining)
- Locations: %s

**STRICT RESERVATION WORKFLOW - FOLLOW EXACTLY:**

Step 1: **ALWAYS SEARCH FIRST**
- When user mentions a city, IMMEDIATELY call search_branches
- Show ALL available branches in that city with clear formatting
- Ask: "Which of these locations would you prefer?"

Step 2: **WAIT FOR USER TO CHOOSE BRANCH**
- User must select a specific branch (e.g., "Bandra", "first one", "ID 9")
- Extract the branch name they chose

Step 3: **COLLECT ALL CUSTOMER DETAILS AT ONCE**
- Ask for name, phone, and occasion together
- Example: "To complete your reservation at GoodFoods - [Branch], please provide:
  1. Your full name
  2. Contact phone number
  3. Occasion (optional: birthday, anniversary, etc.)"

Step 4: **IMMEDIATELY CALL make_reservation TOOL**
- AS SOON AS you have name + phone (and optional occasion), CALL THE TOOL
- DO NOT just talk about making a reservation - ACTUALLY CALL make_reservation
- Pass ALL parameters:
  • branch_name: The branch name user selected (e.g., "GoodFoods - Bandra")
  • date: In YYYY-MM-DD format
  • time: In HH:MM format (use 24-hour, e.g., "14:00" for 2pm)
  • party_size: Number from original request
  • customer_name: From user input
  • customer_phone: From user input
  • occasion: From user input (or omit)

Step 5: **TOOL RETURNS CONFIRMATION**
- The make_reservation tool will return formatted confirmation
- Display it exactly as returned (contains reservation ID, table number, all details)

**Current Date:** %s (%s)

**Time Parsing:**
- "tomorrow at 2pm" = %s at 14:00
- "8pm" = 20:00
- "7:30pm" = 19:30

Be friendly, helpful, and efficient!`,
		pc.dir.Len(),
		cityLine,
		now.Format("2006-01-02"), now.Format("Monday"),
		tomorrow.Format("2006-01-02"),
	)

	if pc.persona.Body != "" {
		prompt += "\n\n---\n\n" + pc.persona.Body
	}

	return prompt
}

// BuildMessages builds the complete message list for an LLM call.
func (pc *PromptContext) BuildMessages(
	history schema.Messages,
	currentMessage string,
	channel, chatID string,
) schema.Messages {
	systemPrompt := pc.BuildSystemPrompt()
	if channel != "" && chatID != "" {
		systemPrompt += fmt.Sprintf("\n\n## Current Session\nChannel: %s\nChat ID: %s", channel, chatID)
	}

	messages := schema.NewMessages()
	messages.AddSystem(systemPrompt)
	messages.Append(history)
	messages.AddUser(currentMessage)

	return messages
}
