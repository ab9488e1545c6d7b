package summarizer

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/meeting-scribe/internal/vtt"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	textColor = "000000"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*+]\s+(.+)$`)
	reRule     = regexp.MustCompile(`^([-*_]\s*){3,}$`)
	reLink     = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	reQuote    = regexp.MustCompile(`^>\s?`)
	reCodeSpan = regexp.MustCompile("`+")
)

// WriteSummary renders a markdown summary into a docx document. Markdown
// markup is removed; headings and **bold** spans keep their weight.
func WriteSummary(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)

	for _, line := range SummaryLines(markdown) {
		p := doc.AddParagraph("")
		if line.Heading > 0 {
			addRun(p, line.Text, true, headingSize(line.Heading))
			continue
		}
		addRichText(p, line.Text)
	}

	return doc.SaveTo(outputPath)
}

// WriteTranscript renders transcript cues into a docx document, one paragraph
// per speaker turn. Consecutive cues of the same speaker are joined.
func WriteTranscript(title string, cues []vtt.Cue, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)
	doc.AddParagraph("")

	for _, turn := range Turns(cues) {
		p := doc.AddParagraph("")
		if turn.Speaker != "" {
			addRun(p, turn.Speaker+": ", true, fontSize)
		}
		addRun(p, turn.Text, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

// Line is one rendered line of a markdown summary.
type Line struct {
	Heading int
	Text    string
}

// SummaryLines strips block-level markdown from text. Bold markers are kept
// for addRichText; blank lines and rules are dropped.
func SummaryLines(markdown string) []Line {
	var lines []Line
	for _, raw := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || reRule.MatchString(trimmed) || strings.HasPrefix(trimmed, "```") {
			continue
		}

		trimmed = reQuote.ReplaceAllString(trimmed, "")
		trimmed = reLink.ReplaceAllString(trimmed, "$1")

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			lines = append(lines, Line{Heading: len(m[1]), Text: m[2]})
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			trimmed = "• " + m[1]
		}
		lines = append(lines, Line{Text: trimmed})
	}
	return lines
}

// Turn is a run of consecutive cues by one speaker.
type Turn struct {
	Speaker string
	Text    string
}

// Turns groups consecutive cues by speaker.
func Turns(cues []vtt.Cue) []Turn {
	var turns []Turn
	for _, c := range cues {
		text := strings.TrimSpace(strings.ReplaceAll(c.Text, "\n", " "))
		if text == "" {
			continue
		}
		if n := len(turns); n > 0 && turns[n-1].Speaker == c.Speaker {
			turns[n-1].Text += " " + text
			continue
		}
		turns = append(turns, Turn{Speaker: c.Speaker, Text: text})
	}
	return turns
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(StripInline(text)).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			addRun(p, part, false, fontSize)
		}
		if i < len(matches) {
			addRun(p, matches[i][1], true, fontSize)
		}
	}
}

// StripInline removes inline markdown emphasis and code markers.
func StripInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return reCodeSpan.ReplaceAllString(s, "")
}
