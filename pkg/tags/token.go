package tags

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	// TokenText is a run of plain text between tags.
	TokenText TokenKind = iota
	// TokenOpen is a well-formed opening tag such as [bold].
	TokenOpen
	// TokenClose is a well-formed closing tag such as [/bold].
	TokenClose
	// TokenInvalid is a bracketed span whose contents are not a valid tag
	// name, such as [1x] or [Foo]. Invalid tags are treated as text.
	TokenInvalid
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenOpen:
		return "open"
	case TokenClose:
		return "close"
	case TokenInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a single lexical unit of tag markup. Start and End are byte
// offsets into the input, half-open, so input[Start:End] is exactly the
// text the token covers. Concatenating the covered spans of all tokens
// reproduces the input unchanged.
type Token struct {
	Kind TokenKind

	// Name is the tag name for TokenOpen and TokenClose, empty otherwise.
	Name string

	// Content is the raw input slice the token covers, brackets included
	// for tag tokens.
	Content string

	Start int
	End   int
}

// tagNameRe matches valid tag names. Names are case-sensitive and
// lowercase only.
var tagNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_-]*$`)

// ValidTagName reports whether name can be used as a tag name.
func ValidTagName(name string) bool {
	return tagNameRe.MatchString(name)
}

// Tokenizer scans an input string into tokens one at a time.
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer returns a tokenizer over input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Next returns the next token. The second result is false once the input
// is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	if t.pos >= len(t.input) {
		return Token{}, false
	}

	if t.input[t.pos] == '[' {
		if close := strings.IndexByte(t.input[t.pos+1:], ']'); close >= 0 {
			return t.lexTag(t.pos + 1 + close), true
		}
		// No ] anywhere ahead, so no tag can start later either: the
		// remainder degrades into one text token.
		return t.text(len(t.input)), true
	}

	// Plain text runs until the next [ that can actually start a tag,
	// which keeps text tokens maximal.
	end := len(t.input)
	for i := t.pos; i < len(t.input); i++ {
		if t.input[i] != '[' {
			continue
		}
		if strings.IndexByte(t.input[i+1:], ']') < 0 {
			break
		}
		end = i
		break
	}
	return t.text(end), true
}

func (t *Tokenizer) text(end int) Token {
	tok := Token{
		Kind:    TokenText,
		Content: t.input[t.pos:end],
		Start:   t.pos,
		End:     end,
	}
	t.pos = end
	return tok
}

// lexTag consumes the bracketed span from the current position through the
// closing bracket at offset end.
func (t *Tokenizer) lexTag(end int) Token {
	start := t.pos
	raw := t.input[start : end+1]
	body := t.input[start+1 : end]
	t.pos = end + 1

	name, closing := body, false
	if strings.HasPrefix(body, "/") {
		name, closing = body[1:], true
	}

	if !ValidTagName(name) {
		return Token{Kind: TokenInvalid, Content: raw, Start: start, End: end + 1}
	}
	kind := TokenOpen
	if closing {
		kind = TokenClose
	}
	return Token{Kind: kind, Name: name, Content: raw, Start: start, End: end + 1}
}

// Tokenize scans the whole input eagerly.
func Tokenize(input string) []Token {
	tk := NewTokenizer(input)
	var tokens []Token
	for {
		tok, ok := tk.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
