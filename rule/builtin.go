package rule

import (
	"fmt"
	"sort"
	"strings"
)

// Built-in language packs. Patterns are ordered so that reserved
// punctuation and comments are tried before the catch-all rules, and
// identifiers stay generic: keyword reclassification happens after
// scanning, driven by the Keywords and Operators word lists.
var builtins = map[string]*Pack{
	"python": {
		Language: "python",
		Patterns: []PatternDef{
			{Name: "whitespace", Pattern: `[ \t\r\n]+`, Skip: true},
			{Name: "comment", Pattern: `#[^\n]*`},
			{Name: "number", Pattern: `\d+(\.\d+)?`},
			{Name: "string", Pattern: `"[^"\n]*"|'[^'\n]*'`},
			{Name: "identifier", Pattern: `[A-Za-z_]\w*`},
			{Name: "operator", Pattern: `[-+*/%=<>!&|^~]+`},
			{Name: "punctuation", Pattern: `[()\[\]{}:;,.@]`},
		},
		Keywords: []string{
			"False", "None", "True", "and", "as", "assert", "async",
			"await", "break", "class", "continue", "def", "del", "elif",
			"else", "except", "finally", "for", "from", "global", "if",
			"import", "in", "is", "lambda", "nonlocal", "not", "or",
			"pass", "raise", "return", "try", "while", "with", "yield",
		},
		Operators: []string{"and", "or", "not", "in", "is"},
	},
	"cpp": {
		Language: "cpp",
		Patterns: []PatternDef{
			{Name: "whitespace", Pattern: `[ \t\r\n]+`, Skip: true},
			{Name: "comment", Pattern: `//[^\n]*`},
			{Name: "block_comment", Pattern: `/\*([^*]|\*+[^*/])*\*+/`},
			{Name: "preprocessor", Pattern: `#[^\n]*`},
			{Name: "number", Pattern: `\d+(\.\d+)?`},
			{Name: "string", Pattern: `"([^"\\\n]|\\.)*"`},
			{Name: "char", Pattern: `'([^'\\\n]|\\.)'`},
			{Name: "identifier", Pattern: `[A-Za-z_]\w*`},
			{Name: "operator", Pattern: `[-+*/%=<>!&|^~?]+`},
			{Name: "punctuation", Pattern: `[(){}\[\];:,.]`},
		},
		Keywords: []string{
			"auto", "bool", "break", "case", "catch", "char", "class",
			"const", "continue", "default", "delete", "do", "double",
			"else", "enum", "explicit", "extern", "false", "float",
			"for", "friend", "goto", "if", "inline", "int", "long",
			"mutable", "namespace", "new", "operator", "private",
			"protected", "public", "return", "short", "signed",
			"sizeof", "static", "struct", "switch", "template", "this",
			"throw", "true", "try", "typedef", "typename", "union",
			"unsigned", "using", "virtual", "void", "volatile", "while",
		},
		Operators: []string{"new", "delete", "sizeof"},
	},
	"java": {
		Language: "java",
		Patterns: []PatternDef{
			{Name: "whitespace", Pattern: `[ \t\r\n]+`, Skip: true},
			{Name: "comment", Pattern: `//[^\n]*`},
			{Name: "block_comment", Pattern: `/\*([^*]|\*+[^*/])*\*+/`},
			{Name: "number", Pattern: `\d+(\.\d+)?`},
			{Name: "string", Pattern: `"([^"\\\n]|\\.)*"`},
			{Name: "char", Pattern: `'([^'\\\n]|\\.)'`},
			{Name: "annotation", Pattern: `@[A-Za-z_]\w*`},
			{Name: "identifier", Pattern: `[A-Za-z_]\w*`},
			{Name: "operator", Pattern: `[-+*/%=<>!&|^~?]+`},
			{Name: "punctuation", Pattern: `[(){}\[\];:,.]`},
		},
		Keywords: []string{
			"abstract", "assert", "boolean", "break", "byte", "case",
			"catch", "char", "class", "const", "continue", "default",
			"do", "double", "else", "enum", "extends", "final",
			"finally", "float", "for", "goto", "if", "implements",
			"import", "instanceof", "int", "interface", "long",
			"native", "new", "package", "private", "protected",
			"public", "return", "short", "static", "strictfp", "super",
			"switch", "synchronized", "this", "throw", "throws",
			"transient", "try", "void", "volatile", "while",
		},
		Operators: []string{"new", "instanceof"},
	},
}

// Builtin returns a copy of the built-in pack for a language.
func Builtin(language string) (*Pack, error) {
	p, ok := builtins[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("unknown language %q (have %s)",
			language, strings.Join(Builtins(), ", "))
	}
	return p.clone(), nil
}

// Builtins lists the built-in pack names in alphabetical order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
