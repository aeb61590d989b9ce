// Package script reads recorded editing sessions: one command per line
// (or separated by semicolons), with # comments.
//
//	tool pen-red
//	down 10 10; move 40 12; up
//	field head "star and snip"
//	approve "A. Vet"
package script

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer tokenizes session scripts.
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_-]*`},
	{Name: "Whitespace", Pattern: `[\s;]+`},
})

// Script is a parsed session.
type Script struct {
	Commands []*Command `@@*`
}

// Command is one step. Exactly one field is set.
type Command struct {
	Pos lexer.Position

	Tool    *string   `  "tool" @Ident`
	Down    *Point    `| "down" @@`
	Move    *Point    `| "move" @@`
	Up      bool      `| @"up"`
	Cancel  bool      `| @"cancel"`
	Zoom    *float64  `| "zoom" @Number`
	Reset   bool      `| @"reset"`
	Resize  *Point    `| "resize" @@`
	Delete  bool      `| @"delete"`
	Undo    bool      `| @"undo"`
	Clear   bool      `| @"clear"`
	Field   *FieldSet `| "field" @@`
	Date    *string   `| "date" @String`
	Approve *string   `| "approve" @String`
}

// Point is a pair of numbers: x y for pointer steps, w h for resize.
type Point struct {
	X float64 `@Number`
	Y float64 `@Number`
}

// FieldSet assigns a chart field.
type FieldSet struct {
	Name  string `@Ident`
	Value string `@String`
}

// Parser builds Scripts from text.
type Parser struct {
	parser *participle.Parser[Script]
}

// NewParser creates a script parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Script](
		participle.Lexer(ScriptLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.CaseInsensitive("Ident"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a script from a reader. name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) (*Script, error) {
	sc, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return sc, nil
}

// ParseString parses a script held in memory.
func (p *Parser) ParseString(name, input string) (*Script, error) {
	sc, err := p.parser.ParseString(name, input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return sc, nil
}

// ParseFile parses the script at path.
func (p *Parser) ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return p.Parse(path, f)
}
