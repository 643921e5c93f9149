package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rubiojr/sandscript/doc"
	"github.com/urfave/cli/v3"
)

func docAction(ctx context.Context, cmd *cli.Command) error {
	w := stdout(cmd)
	if cmd.NArg() == 0 {
		fmt.Fprint(w, doc.FormatAllModules())
		return nil
	}

	target := cmd.Args().First()
	if info, err := os.Stat(target); err == nil {
		var fd *doc.FileDoc
		if info.IsDir() {
			fd, err = doc.ExtractDir(target)
		} else {
			fd, err = doc.ExtractFile(target)
		}
		if err != nil {
			return err
		}
		if cmd.NArg() > 1 {
			symbol := cmd.Args().Get(1)
			docStr, sig, ok := doc.LookupSymbol(fd, symbol)
			if !ok {
				return fmt.Errorf("%s: no method %s", target, symbol)
			}
			fmt.Fprint(w, doc.FormatSymbol(docStr, sig))
			return nil
		}
		fmt.Fprint(w, doc.FormatFile(fd))
		return nil
	}

	out, ok := doc.Lookup(target)
	if !ok {
		return fmt.Errorf("no module or method named %s", target)
	}
	fmt.Fprint(w, out)
	return nil
}
