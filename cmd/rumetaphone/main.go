/*
Command rumetaphone prints Russian metaphone keys.

Usage:

	rumetaphone [flags] [text ...]

Every argument is encoded on its own. Without arguments, standard input is
encoded line by line. Flags:

	-rules file    load rule tables from a rule file (see package rulefile)
	-dump          print the rule tables in rule-file format and exit
	-filter        print the token stream of the phonetic filter instead of keys
	-replace=bool  filter option "replace" (default true)
	-trace level   trace level: error, info or debug (default error)
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	rumetaphone "github.com/talbot/es-ru-metaphone"
	"github.com/talbot/es-ru-metaphone/filter"
	"github.com/talbot/es-ru-metaphone/rulefile"
)

func main() {
	rules := flag.String("rules", "", "rule file to load instead of the reference tables")
	dump := flag.Bool("dump", false, "print rule tables and exit")
	asFilter := flag.Bool("filter", false, "print filtered token stream")
	replace := flag.Bool("replace", true, "filter replaces terms instead of injecting keys")
	level := flag.String("trace", "error", "trace level (error|info|debug)")
	flag.Parse()

	setTraceLevel(*level)
	enc, err := loadEncoder(*rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rumetaphone: %v\n", err)
		os.Exit(1)
	}
	if *dump {
		if err = rulefile.Write(os.Stdout, enc.Tables()); err != nil {
			fmt.Fprintf(os.Stderr, "rumetaphone: %v\n", err)
			os.Exit(1)
		}
		return
	}
	run := func(line string) error {
		fmt.Println(enc.Encode(line))
		return nil
	}
	if *asFilter {
		run = func(line string) error {
			return printTokens(os.Stdout, line, enc, *replace)
		}
	}
	if err = forEachInput(flag.Args(), os.Stdin, run); err != nil {
		fmt.Fprintf(os.Stderr, "rumetaphone: %v\n", err)
		os.Exit(1)
	}
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch strings.ToLower(level) {
	case "info":
		l = tracing.LevelInfo
	case "debug":
		l = tracing.LevelDebug
	}
	for _, key := range []string{"rumetaphone", "rumetaphone.filter", "rumetaphone.index", "rumetaphone.rulefile"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}

func loadEncoder(rules string) (*rumetaphone.Encoder, error) {
	if rules == "" {
		return rumetaphone.New(), nil
	}
	f, err := os.Open(rules)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rulefile.LoadEncoder(rules, f)
}

// forEachInput calls run for every argument, or for every line of stdin if
// there are no arguments.
func forEachInput(args []string, stdin io.Reader, run func(string) error) error {
	if len(args) > 0 {
		for _, arg := range args {
			if err := run(arg); err != nil {
				return err
			}
		}
		return nil
	}
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if err := run(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printTokens(w io.Writer, text string, enc *rumetaphone.Encoder, replace bool) error {
	input := filter.NewWhitespaceTokenizer(strings.NewReader(text))
	tokens, err := filter.Collect(filter.New(input, filter.WithEncoder(enc), filter.WithReplace(replace)))
	if err != nil {
		return err
	}
	for _, t := range tokens {
		fmt.Fprintf(w, "%s\t%d\t%d-%d\n", t.Text, t.PositionIncrement, t.Start, t.End)
	}
	return nil
}
