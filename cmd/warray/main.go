// Package main provides the warray command line tool: inspect WA-1
// headers in files or shared segments and remove stale segments.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/warray-io/warray/exchange"
	"github.com/warray-io/warray/shm"
)

const version = "v0.1.0-dev"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "-v" {
		shm.SetLogger(zap.Must(zap.NewDevelopment()))
		args = args[1:]
	}

	if len(args) == 0 {
		usage()
		return
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Printf("warray %s\n", version)
	case "inspect":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		err = inspectFile(args[1])
	case "inspect-segment":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		err = inspectSegment(args[1])
	case "rm":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		err = shm.Unlink(args[1])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warray: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("warray - inspect WA-1 exchange arrays")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  warray [-v] inspect <file>            Decode a WA-1 header from a file")
	fmt.Println("  warray [-v] inspect-segment <name>    Decode the header of a shared segment")
	fmt.Println("  warray [-v] rm <name>                 Remove a shared segment")
	fmt.Println("  warray version                        Show version")
}

func inspectFile(path string) error {
	p, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	kind, shape, offset, err := exchange.DecodeHeader(p)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	printLayout(path, kind, shape, offset, len(p))
	return nil
}

func inspectSegment(name string) error {
	a, err := shm.Attach(name, shm.WithReadOnly())
	if err != nil {
		return err
	}
	defer a.Release()
	printLayout(name, a.Kind(), a.Shape(), a.Offset(), a.Offset()+a.ByteSize())
	return nil
}

func printLayout(source string, kind exchange.Kind, shape exchange.Shape, offset, total int) {
	fmt.Printf("%s:\n", source)
	fmt.Printf("  kind:     %s\n", kind)
	fmt.Printf("  shape:    %s\n", shape)
	fmt.Printf("  elements: %d\n", shape.NumElements())
	fmt.Printf("  offset:   %d\n", offset)
	fmt.Printf("  total:    %d bytes\n", total)
}
