package main

import (
	"kban/internal/cli"
	"kban/internal/tui"
)

func main() {
	cli.RunTUI = func(s *cli.Session) error {
		return tui.Run(s.Config, s.Store, s.Board)
	}
	cli.Execute()
}
