// Command ignite is the thin client wrapper around internal/client: it
// parses the set/get/rm subcommands and reports the server's response on
// stdout, or an error on stderr with a non-zero exit code.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ignitedb/ignite/internal/client"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/options"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: ignite <set|get|rm> ...")
	}

	sub, rest := args[0], args[1:]
	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	addr := fs.String("addr", options.NewDefaultOptions().Addr, "ip:port of the server")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	positional := fs.Args()

	c := client.New(*addr)

	switch sub {
	case "set":
		if len(positional) != 2 {
			return fmt.Errorf("usage: ignite set KEY VALUE")
		}
		return c.Set(positional[0], positional[1])

	case "get":
		if len(positional) != 1 {
			return fmt.Errorf("usage: ignite get KEY")
		}
		value, ok, err := c.Get(positional[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Key not found")
			return nil
		}
		fmt.Println(value)
		return nil

	case "rm":
		if len(positional) != 1 {
			return fmt.Errorf("usage: ignite rm KEY")
		}
		if err := c.Remove(positional[0]); err != nil {
			if errors.IsKeyNotFound(err) {
				return fmt.Errorf("Key not found")
			}
			return err
		}
		return nil

	default:
		return fmt.Errorf("unknown subcommand %q", sub)
	}
}
