// Package main implements a command-line utility for extracting data from a
// JSON or YAML document using an RFC 9535 JSONPath query.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/arborio/jsonpath"
	"github.com/arborio/jsonpath/spec"
)

func main() {
	app := &cli.App{
		Name:      "jsonpath",
		Usage:     "extract data from JSON or YAML according to RFC 9535",
		UsageText: "jsonpath [options] QUERY",
		Version:   gitrev(),
		Action:    run,
		Args:      true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "input format: json or yaml",
				Value: "json",
			},
			&cli.BoolFlag{
				Name:  "paths",
				Usage: "print each matched value's normalized path instead of its value",
			},
			&cli.BoolFlag{
				Name:  "nondeterministic",
				Usage: "traverse object members in arbitrary order instead of insertion order",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func gitrev() string {
	version := "(git revision unavailable)"
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, kv := range bi.Settings {
			if kv.Key == "vcs.revision" {
				version = kv.Value
			}
		}
	}
	return version
}

func run(ctx *cli.Context) error {
	queryText := ctx.Args().First()
	if queryText == "" {
		cli.ShowAppHelpAndExit(ctx, 1)
	}

	var opts []jsonpath.Option
	if ctx.Bool("nondeterministic") {
		opts = append(opts, jsonpath.WithNondeterministicOrder())
	}
	env := jsonpath.NewEnvironment(opts...)

	query, err := env.Compile(queryText)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	doc, err := readDocument(os.Stdin, ctx.String("format"))
	if err != nil {
		return err
	}

	nodes := query.Find(doc)
	if ctx.Bool("paths") {
		return printJSON(nodes.Paths())
	}
	return printJSON(nodes.Values())
}

// readDocument reads and decodes r as either JSON or YAML, into the
// []any/*spec.Object-based value model queries operate on.
func readDocument(r io.Reader, format string) (any, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}

	switch format {
	case "yaml":
		var obj spec.Object
		if err := yaml.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("could not parse YAML input: %w", err)
		}
		return &obj, nil
	default:
		var obj spec.Object
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("could not parse JSON input: %w", err)
		}
		return &obj, nil
	}
}

func printJSON(v any) error {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not marshal results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
