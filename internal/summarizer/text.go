package summarizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultChunkSize is the number of characters sent to the model per call.
const DefaultChunkSize = 7000

// reCueID matches exported cue identifiers such as "3f2a-91bc/12-0 ".
var reCueID = regexp.MustCompile(`\S+-\S+/\d+-\d+\s+`)

// CleanText NFC-normalizes text, removes cue identifiers and separates the
// remaining non-empty lines with blank lines.
func CleanText(text string) string {
	text = reCueID.ReplaceAllString(norm.NFC.String(text), "")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n\n")
}

// SplitText groups whitespace-separated words into chunks. A chunk is closed
// once its running length (characters plus one separator per word) reaches
// maxChars.
func SplitText(text string, maxChars int) []string {
	var (
		chunks []string
		chunk  []string
		length int
	)
	for _, word := range strings.Fields(text) {
		length += utf8.RuneCountInString(word) + 1
		chunk = append(chunk, word)
		if length >= maxChars {
			chunks = append(chunks, strings.Join(chunk, " "))
			chunk, length = nil, 0
		}
	}
	if len(chunk) > 0 {
		chunks = append(chunks, strings.Join(chunk, " "))
	}
	return chunks
}

// BuildPrompt substitutes chunk for {context}. A prompt without the
// placeholder gets the chunk appended as a transcript section.
func BuildPrompt(prompt, chunk string) string {
	if strings.Contains(prompt, "{context}") {
		return strings.ReplaceAll(prompt, "{context}", chunk)
	}
	return prompt + "\n\nTranscript:\n" + chunk
}
