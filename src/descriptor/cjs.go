package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// StripComments removes // and /* */ comments outside string literals,
// keeping newlines so decoder line numbers stay meaningful.
func StripComments(data []byte) []byte {
	out, err := rewriteSource(data, false)
	if err != nil {
		return data
	}
	return out
}

// ExtractExports returns the object literal assigned to module.exports
// (or exported by default) as flow-style YAML. Only a single static
// literal is accepted: no calls, spreads, template interpolation, other
// statements or identifiers in value position beyond true, false and
// null.
func ExtractExports(data []byte) ([]byte, error) {
	src, err := rewriteSource(data, true)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(src))
	for _, directive := range []string{`"use strict";`, `"use strict"`} {
		text = strings.TrimSpace(strings.TrimPrefix(text, directive))
	}

	switch {
	case strings.HasPrefix(text, "module.exports"):
		text = strings.TrimSpace(strings.TrimPrefix(text, "module.exports"))
		if !strings.HasPrefix(text, "=") {
			return nil, fmt.Errorf("expected '=' after module.exports")
		}
		text = strings.TrimSpace(text[1:])
	case strings.HasPrefix(text, "export default"):
		text = strings.TrimSpace(strings.TrimPrefix(text, "export default"))
	default:
		return nil, fmt.Errorf("only a static `module.exports = { ... }` object literal is supported")
	}

	text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return nil, fmt.Errorf("module.exports must be a single object literal")
	}
	return []byte(text), nil
}

// decodeLiteral decodes the flow-YAML form of an object literal. Repeated
// keys keep the last value, as in JavaScript.
func decodeLiteral(literal []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(literal, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return nodeValue(&doc)
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: object keys must be names or strings", k.Line)
			}
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[k.Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

// rewriteSource walks JavaScript-ish source. Comments are always dropped.
// In js mode string literals are re-emitted as JSON strings (valid YAML
// double-quoted scalars), a space is forced after every ':' so flow
// mappings parse, and dynamic constructs are rejected.
func rewriteSource(data []byte, js bool) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(data))
	line := 1
	depth := 0 // open braces and brackets

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '\n':
			line++
			out.WriteByte(c)
			i++

		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}

		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			end := bytes.Index(data[i+2:], []byte("*/"))
			if end < 0 {
				return nil, fmt.Errorf("line %d: unterminated block comment", line)
			}
			block := data[i : i+2+end+2]
			n := bytes.Count(block, []byte("\n"))
			line += n
			out.WriteString(strings.Repeat("\n", n))
			i += len(block)

		case c == '"' || (js && (c == '\'' || c == '`')):
			s, n, err := scanString(data[i:], line)
			if err != nil {
				return nil, err
			}
			if js {
				enc, err := jsonString(s)
				if err != nil {
					return nil, err
				}
				out.WriteString(enc)
			} else {
				out.Write(data[i : i+n])
			}
			i += n

		case js && c == ':':
			out.WriteByte(':')
			if i+1 < len(data) && data[i+1] != ' ' && data[i+1] != '\t' && data[i+1] != '\n' && data[i+1] != '\r' {
				out.WriteByte(' ')
			}
			i++

		case js && c == '(':
			return nil, fmt.Errorf("line %d: function calls are not supported in a static descriptor", line)

		case js && bytes.HasPrefix(data[i:], []byte("...")):
			return nil, fmt.Errorf("line %d: spread syntax is not supported in a static descriptor", line)

		case js && (c == '{' || c == '['):
			depth++
			out.WriteByte(c)
			i++

		case js && (c == '}' || c == ']'):
			depth--
			out.WriteByte(c)
			i++

		case js && depth > 0 && isDigit(c):
			j := i
			for j < len(data) && (isIdentPart(data[j]) || data[j] == '.') {
				j++
			}
			out.Write(data[i:j])
			i = j

		case js && depth > 0 && isIdentStart(c):
			j := i
			for j < len(data) && isIdentPart(data[j]) {
				j++
			}
			word := string(data[i:j])
			if !isKey(data[j:]) {
				switch word {
				case "true", "false", "null":
				default:
					return nil, fmt.Errorf("line %d: identifier %q is not a static value", line, word)
				}
			}
			out.WriteString(word)
			i = j

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.Bytes(), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// isKey reports whether the next token after a name is ':'.
func isKey(rest []byte) bool {
	rest = bytes.TrimLeft(rest, " \t\r\n")
	return len(rest) > 0 && rest[0] == ':'
}

// scanString reads a quoted literal starting at data[0] and returns its
// decoded value and the number of bytes consumed.
func scanString(data []byte, line int) (string, int, error) {
	quote := data[0]
	var b strings.Builder
	for i := 1; i < len(data); {
		c := data[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\n' && quote != '`':
			return "", 0, fmt.Errorf("line %d: unterminated string", line)
		case c == '$' && quote == '`' && i+1 < len(data) && data[i+1] == '{':
			return "", 0, fmt.Errorf("line %d: template interpolation is not supported in a static descriptor", line)
		case c == '\\' && i+1 < len(data):
			r, n, err := unescape(data[i+1:])
			if err != nil {
				return "", 0, fmt.Errorf("line %d: %w", line, err)
			}
			if r >= 0 {
				b.WriteRune(r)
			}
			i += 1 + n
		default:
			r, size := utf8.DecodeRune(data[i:])
			b.WriteRune(r)
			i += size
		}
	}
	return "", 0, fmt.Errorf("line %d: unterminated string", line)
}

// unescape decodes one escape sequence (without the backslash). A
// negative rune means the sequence produces nothing (line continuation).
func unescape(data []byte) (rune, int, error) {
	switch c := data[0]; c {
	case 'n':
		return '\n', 1, nil
	case 't':
		return '\t', 1, nil
	case 'r':
		return '\r', 1, nil
	case 'b':
		return '\b', 1, nil
	case 'f':
		return '\f', 1, nil
	case 'v':
		return '\v', 1, nil
	case '0':
		return 0, 1, nil
	case '\n':
		return -1, 1, nil
	case 'x':
		if len(data) < 3 {
			return 0, 0, fmt.Errorf("short \\x escape")
		}
		v, err := strconv.ParseUint(string(data[1:3]), 16, 8)
		if err != nil {
			return 0, 0, fmt.Errorf("bad \\x escape: %w", err)
		}
		return rune(v), 3, nil
	case 'u':
		if len(data) >= 2 && data[1] == '{' {
			end := bytes.IndexByte(data, '}')
			if end < 0 {
				return 0, 0, fmt.Errorf("unterminated \\u{ escape")
			}
			v, err := strconv.ParseUint(string(data[2:end]), 16, 32)
			if err != nil {
				return 0, 0, fmt.Errorf("bad \\u escape: %w", err)
			}
			return rune(v), end + 1, nil
		}
		if len(data) < 5 {
			return 0, 0, fmt.Errorf("short \\u escape")
		}
		v, err := strconv.ParseUint(string(data[1:5]), 16, 16)
		if err != nil {
			return 0, 0, fmt.Errorf("bad \\u escape: %w", err)
		}
		return rune(v), 5, nil
	default:
		r, size := utf8.DecodeRune(data)
		return r, size, nil
	}
}

func jsonString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
