package main

import (
	"fmt"
	"os"

	"github.com/dyne/atbash/internal/clip"
)

func main() {
	root := newRootCmd(clip.System{})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
