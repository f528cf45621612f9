// Package input parses the planner prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// Commands understood by the planner prompt.
var Commands = []PromptCommand{
	{Name: "/remove", Description: "Remove a course: /remove COMP 202"},
	{Name: "/copy", Description: "Copy registration numbers"},
	{Name: "/quit", Description: "Leave the planner"},
}

// PromptMatchingCommands returns commands that match the current input prefix.
// Suggestions stop once an argument is being typed.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ParseCommand splits "/remove COMP 202" into "/remove" and "COMP 202".
// Input that is not a command returns ok false and is a search query.
func ParseCommand(input string) (name, arg string, ok bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", "", false
	}
	name, arg, _ = strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(arg), true
}
