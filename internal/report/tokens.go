package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"whilec/token"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Tokens writes an aligned table of tokens: position, lexeme, tag, label
func Tokens(w io.Writer, tokens []token.Token) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("POS", "LEXEME", "TAG", "LABEL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, tok := range tokens {
		t.Row(tok.Pos.String(), strconv.Quote(tok.Lexeme), tok.Tag.String(), tok.Label)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}
