// Package render draws a board for terminals.
package render

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessbot-backend/internal/model"
	"github.com/fatih/color"
)

type Options struct {
	// Flip draws the board from Black's side.
	Flip    bool
	NoColor bool
}

type Renderer struct {
	opts  Options
	label *color.Color
}

func New(opts Options) *Renderer {
	r := &Renderer{
		opts:  opts,
		label: color.New(color.Bold),
	}
	if opts.NoColor {
		r.label.DisableColor()
	}
	return r
}

// Board returns the drawing of b, rank 8 on top unless flipped. The selected
// square, if any, is highlighted, or bracketed when colours are off.
func (r *Renderer) Board(b *model.Board, selected *model.Position) string {
	var builder strings.Builder
	for i := 0; i < model.BoardSize; i++ {
		row := i
		if r.opts.Flip {
			row = model.BoardSize - 1 - i
		}
		builder.WriteString(r.label.Sprintf(" %d ", model.BoardSize-row))
		for j := 0; j < model.BoardSize; j++ {
			col := j
			if r.opts.Flip {
				col = model.BoardSize - 1 - j
			}
			isSelected := selected != nil && *selected == model.Position{Row: row, Col: col}
			builder.WriteString(r.cell(b, row, col, isSelected))
		}
		builder.WriteString("\n")
	}
	builder.WriteString("   ")
	for j := 0; j < model.BoardSize; j++ {
		col := j
		if r.opts.Flip {
			col = model.BoardSize - 1 - j
		}
		builder.WriteString(r.label.Sprintf(" %c ", 'a'+col))
	}
	builder.WriteString("\n")
	return builder.String()
}

func (r *Renderer) cell(b *model.Board, row, col int, isSelected bool) string {
	sym := " "
	fg := color.FgHiWhite
	if p, _ := b.Get(row, col); p != nil {
		sym = p.Symbol()
		if p.Color == model.Black {
			fg = color.FgBlack
		}
	}

	if r.opts.NoColor {
		if isSelected {
			return "[" + sym + "]"
		}
		return " " + sym + " "
	}

	bg := color.BgHiWhite
	if (row+col)%2 == 1 {
		bg = color.BgGreen
	}
	if isSelected {
		bg = color.BgYellow
	}
	return color.New(fg, bg, color.Bold).Sprint(" " + sym + " ")
}

// Status describes whose turn it is and the outcome of the last action.
func Status(turn model.Color, history int, result model.SelectionResult) string {
	return fmt.Sprintf("%s to move, %d move(s) played, last: %s", turn, history, result)
}
