// Command mnes encodes Myanmar names from the command line.
//
//	mnes [-format short] [-json] [-dict dir] name...
//	mnes -i    interactive mode with TUI
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/mnes"
	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/logger"
	"github.com/dmitrymomot/mnes/pkg/romanize"
	"github.com/dmitrymomot/mnes/pkg/syllable"
)

var errSomeFailed = errors.New("some names could not be encoded")

func main() {
	var (
		format      = flag.String("format", string(romanize.DefaultFormat), "Output format: short, long, academic, initial")
		asJSON      = flag.Bool("json", false, "Print results as JSON")
		dictDir     = flag.String("dict", "", "Directory with extra syllable files (YAML/JSON)")
		historyPath = flag.String("history", history.DefaultFileName, "File written by the export menu item")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log encoder diagnostics to stderr")
	)
	flag.Parse()

	log := logger.NewNope()
	if *verbose {
		log = logger.New(logger.WithOutput(os.Stderr), logger.WithText(), logger.WithLevel(slog.LevelDebug))
	}

	dictOpts := []syllable.Option{syllable.WithBuiltin()}
	if *dictDir != "" {
		dictOpts = append(dictOpts, syllable.WithLoader(syllable.NewFSLoader(os.DirFS(*dictDir))))
	}
	dict, err := syllable.New(dictOpts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading dictionary:", err)
		os.Exit(1)
	}

	hist := history.NewLog(0)
	enc := mnes.New(dict, mnes.WithHistory(hist), mnes.WithLogger(log))

	if *interactive {
		if err := runInteractive(enc, hist, *historyPath); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mnes [-format short] [-json] [-dict dir] name...")
		fmt.Fprintln(os.Stderr, "       mnes -i  (interactive mode)")
		os.Exit(2)
	}

	if err := encodeNames(os.Stdout, enc, flag.Args(), *format, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// encodeNames prints one block per name. A failing name is reported inline
// and does not stop the rest.
func encodeNames(w io.Writer, enc *mnes.Encoder, names []string, format string, asJSON bool) error {
	var failed bool
	for _, name := range names {
		res, err := enc.Encode(name, format)
		if err != nil {
			failed = true
			fmt.Fprintf(w, "%s: %v\n", name, err)
			continue
		}

		if asJSON {
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(data))
			continue
		}
		fmt.Fprint(w, formatResult(res))
	}

	if failed {
		return errSomeFailed
	}
	return nil
}

func formatResult(res mnes.Result) string {
	var b strings.Builder
	rule := strings.Repeat("-", 40)

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Original: %s\n", res.Original)
	fmt.Fprintf(&b, "Encoded (%s): %s\n", res.Format, res.Encoded)
	if len(res.Warnings) > 0 {
		fmt.Fprintln(&b, "\nWarnings:")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	fmt.Fprintln(&b, "\nStatistics:")
	fmt.Fprintf(&b, "  Syllables: %d\n", res.SyllableCount)
	fmt.Fprintf(&b, "  Mapped: %d\n", res.MappedCount)
	fmt.Fprintf(&b, "  Compression: %.1f%%\n", res.CompressionRatio*100)
	fmt.Fprintln(&b, rule)
	return b.String()
}

func formatReport(r mnes.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total encodings: %d\n", r.TotalEncodings)
	fmt.Fprintf(&b, "Errors: %d (%.1f%%)\n", r.Errors, r.ErrorRate*100)
	if r.MostUsed != nil {
		fmt.Fprintf(&b, "Most used syllable: %s (%d uses)\n", r.MostUsed.Syllable, r.MostUsed.Count)
		fmt.Fprintf(&b, "Top %d syllables:\n", len(r.Top))
		for i, c := range r.Top {
			fmt.Fprintf(&b, "  %d. %s (%d uses)\n", i+1, c.Syllable, c.Count)
		}
	}
	return b.String()
}
