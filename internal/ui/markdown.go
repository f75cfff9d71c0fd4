package ui

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"

	"github.com/docdesk/docdesk/internal/logger"
)

var (
	mdMu       sync.Mutex
	mdRenderer *glamour.TermRenderer
	mdWidth    int
)

// RenderMarkdown renders markdown to styled terminal text at the given
// wrap width. The glamour renderer is cached per width.
func RenderMarkdown(text string, width int) string {
	if width < 10 {
		width = 10
	}

	mdMu.Lock()
	defer mdMu.Unlock()

	if mdRenderer == nil || mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			logger.Warn("Markdown: renderer init failed: %v", err)
			return text
		}
		mdRenderer = r
		mdWidth = width
	}

	out, err := mdRenderer.Render(text)
	if err != nil {
		logger.Warn("Markdown: render failed: %v", err)
		return text
	}
	return strings.TrimRight(out, "\n")
}

// HighlightCode applies syntax highlighting to code using chroma.
func HighlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// RenderStreaming styles partially received markdown. Fenced code blocks
// get chroma highlighting as soon as they are closed; everything else
// stays plain until the message completes and goes through glamour.
func RenderStreaming(text string, width int) string {
	var out []string
	var code []string
	var language string
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				out = append(out, HighlightCode(strings.Join(code, "\n"), language))
				code = nil
				inFence = false
			} else {
				inFence = true
				language = strings.TrimPrefix(trimmed, "```")
			}
			continue
		}
		if inFence {
			code = append(code, line)
			continue
		}
		out = append(out, wrapLine(line, width))
	}

	// An unclosed fence is shown raw; it will be highlighted once closed.
	if inFence {
		out = append(out, code...)
	}
	return strings.Join(out, "\n")
}

// wrapLine hard-wraps one line at the display width.
func wrapLine(line string, width int) string {
	if width < 10 {
		return line
	}
	var out []string
	for len(line) > 0 {
		cut := width
		if cut >= len(line) {
			out = append(out, line)
			break
		}
		// Prefer breaking at a space.
		at := strings.LastIndex(line[:cut], " ")
		if at <= 0 {
			at = cut
		}
		out = append(out, line[:at])
		line = strings.TrimLeft(line[at:], " ")
	}
	return strings.Join(out, "\n")
}
