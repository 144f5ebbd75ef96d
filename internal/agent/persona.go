package agent

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona is an optional PERSONA.md override for the assistant's voice.
//
// The file carries YAML frontmatter with model overrides followed by a
// markdown body that is appended to the system prompt:
//
//	---
//	model: llama-3.3-70b-versatile
//	temperature: 0.5
//	---
//	Always greet guests in Hindi first.
type Persona struct {
	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature"`

	Body string `yaml:"-"`
}

// LoadPersona reads a PERSONA.md file. A missing or empty file yields the
// zero Persona, which leaves the default prompt and settings untouched.
func LoadPersona(path string) Persona {
	if path == "" {
		return Persona{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Persona{}
	}

	content := string(data)
	if !strings.HasPrefix(content, "---") {
		return Persona{Body: strings.TrimSpace(content)}
	}

	// Extract YAML block between the first --- and the second ---.
	rest := content[3:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return Persona{Body: strings.TrimSpace(content)}
	}

	var p Persona
	_ = yaml.Unmarshal([]byte(rest[:end]), &p)

	body := rest[end+len("\n---"):]
	p.Body = strings.TrimSpace(body)

	return p
}
