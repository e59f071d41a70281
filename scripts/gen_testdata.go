package main

// @generated by hand; regenerate with:
//go:generate go run gen_testdata.go ../testdata

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quotient-lang/quotient"
)

// gen_testdata regenerates every testdata/*.golden file from its matching
// *.quot source by actually running it through a fresh Interpreter,
// concurrently across fixtures (errgroup/context, the same shape as the
// teacher's scripts/gen_vm_expects.go, retargeted at this package's own
// Interpreter instead of an external reference binary).
func main() {
	flag.Parse()
	dir := "."
	if args := flag.Args(); len(args) > 0 {
		dir = args[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	matches, err := filepath.Glob(filepath.Join(dir, "*.quot"))
	if err != nil {
		log.Fatalf("glob: %v", err)
	}

	eg, _ := errgroup.WithContext(ctx)
	for _, quotPath := range matches {
		quotPath := quotPath
		eg.Go(func() error { return regenerate(quotPath) })
	}
	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func regenerate(quotPath string) error {
	source, err := os.ReadFile(quotPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", quotPath, err)
	}

	in := quotient.New()
	res := in.Execute(string(source))

	goldenPath := strings.TrimSuffix(quotPath, ".quot") + ".golden"
	f, err := os.Create(goldenPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", goldenPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "STATUS %s\n", res.Status)
	fmt.Fprintf(w, "OUTPUT %s\n", strconv.Quote(res.Output))
	fmt.Fprintln(w, "STACK")
	for _, sv := range in.GetStack() {
		fmt.Fprintln(w, formatGolden(sv))
	}
	return w.Flush()
}

// formatGolden renders a SerializedValue using the same print semantics as
// Value.Format() (no quotes around strings), so golden stack lines read
// exactly like what `.`/PRINT would have written.
func formatGolden(sv quotient.SerializedValue) string {
	switch v := sv.Value.(type) {
	case []quotient.SerializedValue:
		var b strings.Builder
		b.WriteString("[ ")
		for i, e := range v {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatGolden(e))
		}
		b.WriteString(" ]")
		return b.String()
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
