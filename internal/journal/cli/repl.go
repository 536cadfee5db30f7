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

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Share(ctx context.Context, arg string) error
	Save(ctx context.Context, arg string) error
	ExportAll(ctx context.Context) error
	Gallery(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist            list entries, newest first
  show <n|id>       show one entry
  add               write a new entry
  edit <n|id>       change the text or photo of an entry
  delete <n|id>     delete an entry
  share <n|id>      render an entry and share the page
  save <n|id>       render an entry and save the page to the gallery
  pdf | exportall   export every entry as one PDF
  gallery           list pages saved to the gallery
  exit | quit       leave the program
<n> is the number shown by list.`

// runREPL reads one command per line from reader and dispatches it to a.
//
// The first token is the command, the optional second token its target.
// When statusFn is nil no prompt is printed, which keeps piped sessions
// clean. The loop ends on EOF, on "exit"/"quit" or when ctx is done.
// Command errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if statusFn != nil {
			printlnFn(fmt.Sprintf("journal %s> ", statusFn()))
		}
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, arg)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "delete", "rm":
			_ = a.Delete(ctx, arg)

		case "share":
			_ = a.Share(ctx, arg)

		case "save":
			_ = a.Save(ctx, arg)

		case "pdf", "exportall":
			_ = a.ExportAll(ctx)

		case "gallery":
			_ = a.Gallery(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
