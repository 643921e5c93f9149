package main

import (
	"github.com/rubiojr/sandscript/cmd"
	_ "github.com/rubiojr/sandscript/modules/base64"
	_ "github.com/rubiojr/sandscript/modules/color"
	_ "github.com/rubiojr/sandscript/modules/conv"
	_ "github.com/rubiojr/sandscript/modules/crypto"
	_ "github.com/rubiojr/sandscript/modules/filepath"
	_ "github.com/rubiojr/sandscript/modules/hex"
	_ "github.com/rubiojr/sandscript/modules/io"
	_ "github.com/rubiojr/sandscript/modules/math"
	_ "github.com/rubiojr/sandscript/modules/os"
	_ "github.com/rubiojr/sandscript/modules/rand"
	_ "github.com/rubiojr/sandscript/modules/re"
	_ "github.com/rubiojr/sandscript/modules/str"
	_ "github.com/rubiojr/sandscript/modules/time"
)

var version = "v0.3.0"

func main() {
	cmd.Execute(version)
}
