package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printFn writes the prompt without a trailing newline.
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Delete(ctx context.Context, refs []string) error
	Preview(ctx context.Context, ref string) error
	Status(ctx context.Context) error
	Export(ctx context.Context) error
}

const helpText = `Available commands:
  list                    show all users
  add                     create a user
  edit <id|userid>        change a user
  delete <id|userid> ...  delete users
  preview <id|userid>     show the ADDUSER command for a user
  status                  show online/offline mode and local seed state
  export                  upload a JSON snapshot to S3
  exit | quit             leave the program`

// runREPL reads a line from reader, parses the first token as the command,
// and dispatches to methods on a. The loop exits on EOF or when the user
// types "exit" or "quit". Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("racf %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <id|userid>")
				continue
			}
			cmdErr = a.Edit(ctx, args[0])

		case "delete", "rm":
			if len(args) == 0 {
				printlnFn("Usage: delete <id|userid> ...")
				continue
			}
			cmdErr = a.Delete(ctx, args)

		case "preview":
			if len(args) != 1 {
				printlnFn("Usage: preview <id|userid>")
				continue
			}
			cmdErr = a.Preview(ctx, args[0])

		case "status":
			cmdErr = a.Status(ctx)

		case "export":
			cmdErr = a.Export(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(errorStyle.Render(formatError(cmdErr)))
		}
	}
}
