package tui

import "prism/perspective"

// ExamplePrompts are offered on the input screen for a quick start
var ExamplePrompts = []string{
	"I want to learn a new language. What's a good way to go about it?",
	"How should I resolve a conflict within my team?",
	"We're planning to bring AI tools into our daily work.",
	"I'm thinking about changing jobs.",
	"I'm starting a blog. What topics would work well?",
}

func perspectiveKeys() []string {
	return perspective.Keys()
}
