// Package postprocess removes common LLM artifacts from generated text.
//
// Every generation adapter runs the raw model output through Clean before
// handing it to the judge, the reviser, or the caller.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes LLM artifacts from text in three phases and returns the
// trimmed result:
//  1. Thinking / reasoning block removal
//  2. Preamble echo removal ("Here is your story:")
//  3. Quote wrapping removal
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removePreambleEchoes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// --- Phase 1: thinking blocks ---

// thinkingBlockRe matches complete <thinking>…</thinking> style blocks.
// RE2 has no backreferences, so each tag pair is spelled out.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedThinkingRe matches an opened thinking tag whose closing tag is
// missing (the model ran out of tokens mid-thought).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// --- Phase 2: preamble echoes ---

// echoPatterns match introductory lines models prepend even when told to
// return only the story. Each is anchored at the start and requires a colon.
var echoPatterns = []*regexp.Regexp{
	// "Here is / Here's [the|your] [revised|improved|new] [bedtime] story:"
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the| your| a)? (?:revised |improved |new |updated )?(?:bedtime )?(?:story|version)\s*:`),
	// "[The] [revised|improved] [bedtime] story:" alone on its line, so a
	// story that opens with "Story: ..." keeps its first words
	regexp.MustCompile(`(?i)^(?:the )?(?:revised |improved |updated )?(?:bedtime )?story[ \t]*:[ \t]*(?:\r?\n|$)`),
	// "Certainly / Sure / Of course[,] here is [the] story:"
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.!]? here(?:'s| is)(?: the| your| a)? (?:revised |improved |new |updated )?(?:bedtime )?(?:story|version)\s*:`),
}

func removePreambleEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// --- Phase 3: quote wrapping ---

var quotePairs = []struct{ open, close rune }{
	{'"', '"'},
	{'\'', '\''},
	{'«', '»'},
	{'“', '”'},
	{'‘', '’'},
}

// removeQuoteWrapping strips outer quotes when the whole text is wrapped in
// them. Triple double quotes are checked first because the prompts fence
// stories that way and models copy the fence. A single quote pair is only
// removed when the inside holds no other quote of the same kind: a story
// that opens and closes with dialogue is left alone.
func removeQuoteWrapping(text string) string {
	if len(text) >= 6 && strings.HasPrefix(text, `"""`) && strings.HasSuffix(text, `"""`) {
		return strings.TrimSpace(text[3 : len(text)-3])
	}
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	for _, p := range quotePairs {
		if runes[0] != p.open || runes[n-1] != p.close {
			continue
		}
		inner := string(runes[1 : n-1])
		if strings.ContainsRune(inner, p.open) || strings.ContainsRune(inner, p.close) {
			return text
		}
		return strings.TrimSpace(inner)
	}
	return text
}
