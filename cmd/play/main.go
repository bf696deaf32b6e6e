// Command play is a hot-seat chess board for the terminal.
package main

import (
	"flag"
	"os"

	"github.com/benbeisheim/chessbot-backend/internal/render"
	"github.com/fatih/color"
)

func main() {
	noColor := flag.Bool("no-color", false, "draw the board without colours")
	flip := flag.Bool("flip", false, "draw the board from Black's side")
	flag.Parse()

	opts := render.Options{Flip: *flip, NoColor: *noColor || color.NoColor}
	if err := run(os.Stdin, color.Output, opts); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
