// Package catalog holds the canned answer scripts for each banking service
// intent. Scripts are static English text; localization happens downstream.
package catalog

import (
	"fmt"

	"banking-assistant/internal/assistant/intent"
)

// Answer is the structured result of a handler. NeedsEscalation replaces the
// old convention of tagging the text with a sentinel prefix: a handler that
// decides the question actually needs expert attention sets the flag and puts
// the question to forward in Question.
type Answer struct {
	Text            string
	NeedsEscalation bool
	Question        string
}

// Catalog resolves a service intent to its canned answer script.
type Catalog struct {
	scripts map[intent.Intent]string
}

// New builds the catalog with the built-in scripts.
func New() *Catalog {
	return &Catalog{scripts: builtinScripts()}
}

// Script returns the canned text for the intent. Unknown intents fall back to
// the general inquiry script.
func (c *Catalog) Script(label intent.Intent) string {
	if script, ok := c.scripts[label]; ok {
		return script
	}
	return c.scripts[intent.GeneralInquiry]
}

// Respond resolves the intent to a structured answer.
func (c *Catalog) Respond(label intent.Intent) Answer {
	return Answer{Text: c.Script(label)}
}

// Validate checks that every service intent has a script. It runs at startup
// so a catalog gap fails fast instead of surfacing as a wrong answer.
func (c *Catalog) Validate() error {
	for _, svc := range intent.Services() {
		script, ok := c.scripts[svc]
		if !ok || script == "" {
			return fmt.Errorf("catalog has no script for intent %q", svc)
		}
	}
	return nil
}
