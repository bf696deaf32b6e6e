package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chessbot-backend/internal/model"
	"github.com/benbeisheim/chessbot-backend/internal/render"
)

const help = `commands:
  e2       click a square (select, deselect or move)
  e2 e4    click two squares
  undo     take back the last move
  new      start a new game
  quit     leave`

type player struct {
	session *model.Session
	r       *render.Renderer
	out     io.Writer
	last    model.SelectionResult
}

// run reads commands from in until EOF or quit, drawing the board to out
// after every command.
func run(in io.Reader, out io.Writer, opts render.Options) error {
	p := &player{
		session: model.NewSession(),
		r:       render.New(opts),
		out:     out,
	}
	p.draw()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := p.exec(fields); quit {
			return nil
		}
	}
}

func (p *player) exec(fields []string) (quit bool) {
	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(p.out, help)
		return false
	case "undo", "u":
		if !p.session.Undo() {
			fmt.Fprintln(p.out, "nothing to undo")
			return false
		}
		p.last = model.NoOp
	case "new", "n":
		p.session.NewGame()
		p.last = model.NoOp
	default:
		if len(fields) > 2 {
			fmt.Fprintln(p.out, "expected one or two squares, e.g. e2 or e2 e4")
			return false
		}
		squares := make([]model.Position, 0, len(fields))
		for _, f := range fields {
			pos, err := model.ParsePosition(f)
			if err != nil {
				fmt.Fprintf(p.out, "%q: %v (type help)\n", f, err)
				return false
			}
			squares = append(squares, pos)
		}
		for _, pos := range squares {
			res, err := p.session.SelectSquare(pos.Row, pos.Col)
			if err != nil {
				fmt.Fprintln(p.out, err)
				return false
			}
			p.last = res
		}
	}
	p.draw()
	return false
}

func (p *player) draw() {
	b := p.session.Board()
	var sel *model.Position
	if pos, ok := p.session.Selection(); ok {
		sel = &pos
	}
	fmt.Fprint(p.out, p.r.Board(&b, sel))
	fmt.Fprintln(p.out, render.Status(p.session.CurrentTurn(), p.session.HistoryLen(), p.last))
}
