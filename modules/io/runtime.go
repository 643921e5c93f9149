package iomod

import (
	"fmt"
	"io"
	"os"

	"github.com/rubiojr/sandscript/interop"
)

// Stdout receives everything the io module prints.
var Stdout io.Writer = os.Stdout

// --- io module ---

type IO struct{}

func (*IO) Print(h interop.Host, v interop.Value) error {
	_, err := fmt.Fprint(Stdout, v)
	return err
}

func (*IO) Println(h interop.Host, v interop.Value) error {
	_, err := fmt.Fprintln(Stdout, v)
	return err
}

func (*IO) Newline(h interop.Host) error {
	_, err := fmt.Fprintln(Stdout)
	return err
}
