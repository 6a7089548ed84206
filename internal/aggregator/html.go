package aggregator

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// ansiSGR matches one CSI SGR escape sequence, e.g. "\x1b[1;38;2;255;0;0m".
var ansiSGR = regexp.MustCompile(`\x1b\[([0-9;]*)m`)

// AnsiToHTML converts a string containing ANSI SGR escape sequences into
// HTML with inline-styled <span> elements, for the web UI. Text outside
// of (or that fails to parse as) an SGR sequence is HTML-escaped verbatim
// rather than dropped.
func AnsiToHTML(s string) string {
	var b strings.Builder
	openSpans := 0
	pos := 0

	for _, loc := range ansiSGR.FindAllStringSubmatchIndex(s, -1) {
		start, end := loc[0], loc[1]
		codesStart, codesEnd := loc[2], loc[3]

		if start > pos {
			b.WriteString(html.EscapeString(s[pos:start]))
		}

		codes := s[codesStart:codesEnd]
		if codes == "" || codes == "0" {
			for openSpans > 0 {
				b.WriteString("</span>")
				openSpans--
			}
		} else if style := sgrToCSS(codes); style != "" {
			b.WriteString(fmt.Sprintf(`<span style="%s">`, style))
			openSpans++
		}

		pos = end
	}
	if pos < len(s) {
		b.WriteString(html.EscapeString(s[pos:]))
	}
	for openSpans > 0 {
		b.WriteString("</span>")
		openSpans--
	}
	return b.String()
}

// sgrToCSS converts a semicolon-separated SGR code list to an inline CSS
// declaration string, or "" if none of the codes are recognized.
func sgrToCSS(codes string) string {
	var decls []string
	parts := strings.Split(codes, ";")
	for i := 0; i < len(parts); i++ {
		code, err := strconv.Atoi(parts[i])
		if err != nil {
			continue
		}
		switch {
		case code == 1:
			decls = append(decls, "font-weight:bold")
		case code == 3:
			decls = append(decls, "font-style:italic")
		case code == 4:
			decls = append(decls, "text-decoration:underline")
		case code == 38 && i+1 < len(parts):
			if css, consumed := parseExtendedColor(parts[i+1:]); css != "" {
				decls = append(decls, "color:"+css)
				i += consumed
			}
		case code >= 30 && code <= 37:
			decls = append(decls, "color:"+ansiBasicColor(code-30))
		case code >= 90 && code <= 97:
			decls = append(decls, "color:"+ansiBasicColor(code-90))
		}
	}
	return strings.Join(decls, ";")
}

// parseExtendedColor parses the remainder of an SGR "38;..." extended
// color sequence (either "5;N" 256-color or "2;R;G;B" truecolor),
// returning the CSS color value and how many additional parts it
// consumed.
func parseExtendedColor(rest []string) (css string, consumed int) {
	if len(rest) == 0 {
		return "", 0
	}
	mode, err := strconv.Atoi(rest[0])
	if err != nil {
		return "", 0
	}
	switch mode {
	case 2:
		if len(rest) < 4 {
			return "", 0
		}
		r, err1 := strconv.Atoi(rest[1])
		g, err2 := strconv.Atoi(rest[2])
		bl, err3 := strconv.Atoi(rest[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return "", 0
		}
		return fmt.Sprintf("rgb(%d,%d,%d)", r, g, bl), 4
	case 5:
		if len(rest) < 2 {
			return "", 0
		}
		return fmt.Sprintf("var(--ansi-256-%s)", rest[1]), 2
	default:
		return "", 0
	}
}

func ansiBasicColor(n int) string {
	names := []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}
	if n < 0 || n >= len(names) {
		return ""
	}
	return names[n]
}
