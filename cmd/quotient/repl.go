package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/quotient-lang/quotient"
	"github.com/quotient-lang/quotient/internal/runeio"
)

// writeANSI writes s to w one rune at a time through runeio.WriteANSIRune,
// so C1 control characters written by EMIT go out in their 7-bit ESC form
// (NEL as \r\n); ASCII, C0 controls included, and all other runes are
// written as-is.
func writeANSI(w io.Writer, s string) {
	runeio.WriteANSIString(w, s)
}

func replCmd(newInterpreter func() *quotient.Interpreter) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(newInterpreter())
		},
	}
}

func runREPL(in *quotient.Interpreter) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd())

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetWordCompleter(wordCompleter(in))

	prompt := "quotient> "
	if !interactive {
		prompt = ""
	}

	for {
		text, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		line.AppendHistory(text)

		res := in.Execute(text)
		writeANSI(stdout, res.Output)
		if res.Status != "OK" {
			stdout.Flush()
			fmt.Fprintln(os.Stderr, res.Status)
			continue
		}
		printStack(in)
		stdout.Flush()
	}
}

// wordCompleter offers every User word (GetCustomWords; builtins are not
// offered) as a tab-completion candidate, matched case-insensitively
// against the prefix already typed.
func wordCompleter(in *quotient.Interpreter) liner.WordCompleter {
	return func(line string, pos int) (head string, completions []string, tail string) {
		head, tail = line[:pos], line[pos:]
		start := strings.LastIndexAny(head, " \t")
		prefix := head[start+1:]
		upper := strings.ToUpper(prefix)
		for _, name := range in.GetCustomWords() {
			if strings.HasPrefix(name, upper) {
				completions = append(completions, name)
			}
		}
		return head[:start+1], completions, tail
	}
}

// printStack renders the data stack bottom-to-top, right-aligning the
// index column by display width (go-runewidth); each value follows its
// index unpadded.
func printStack(in *quotient.Interpreter) {
	stack := in.GetStack()
	if len(stack) == 0 {
		return
	}
	rendered := make([]string, len(stack))
	width := 0
	for i, sv := range stack {
		rendered[i] = formatSerialized(sv)
		if w := runewidth.StringWidth(fmt.Sprint(i)); w > width {
			width = w
		}
	}
	for i, s := range rendered {
		idx := fmt.Sprint(i)
		pad := strings.Repeat(" ", width-runewidth.StringWidth(idx))
		fmt.Fprintf(stdout, "%s%s: %s\n", pad, idx, s)
	}
}

// formatSerialized renders a get_stack-shaped value the way the REPL
// echoes it back: safe integers and booleans bare; strings Go-quoted, as
// are numbers serialized as text (fractions, integers past 2^53-1);
// symbols with a sym: prefix, nil as nil, and vectors as [a b ...].
func formatSerialized(sv quotient.SerializedValue) string {
	switch v := sv.Value.(type) {
	case []quotient.SerializedValue:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatSerialized(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case string:
		if sv.Type == "symbol" {
			return "sym:" + v
		}
		return fmt.Sprintf("%q", v)
	case nil:
		return "nil"
	default:
		return fmt.Sprint(v)
	}
}
