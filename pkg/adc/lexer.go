package adc

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// HexDumpLexer tokenizes the byte dump printed after each rail label.
// The first text that is neither a hex digit run nor whitespace starts a
// Rest token that runs to the end of the payload.
var HexDumpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Byte", Pattern: `[0-9A-Fa-f]+`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Rest", Pattern: `(?s).+`},
})

// HexDump is the parsed form of a rail payload such as "00 01 00 00".
type HexDump struct {
	Bytes []string `parser:"@Byte*"`
	Rest  string   `parser:"@Rest?"`
}

var hexDumpParser = participle.MustBuild[HexDump](
	participle.Lexer(HexDumpLexer),
	participle.Elide("Whitespace"),
)

// ParseHexDump tokenizes payload into its hex byte tokens.
func ParseHexDump(payload string) (*HexDump, error) {
	return hexDumpParser.ParseString("", payload)
}
