// relayctl submits a source file to a judgerelay server and prints the result.
//
// Usage:
//
//	go run ./cmd/relayctl -lang "Python (3.11.2)" -user alice -stdin input.txt main.py
//	go run ./cmd/relayctl -list -limit 20
//	go run ./cmd/relayctl -languages
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	relay "github.com/gsarma/judgerelay/sdk"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("relayctl", flag.ContinueOnError)
	fs.SetOutput(errOut)

	server := fs.String("server", envOr("RELAY_URL", "http://localhost:3000"), "relay base URL")
	lang := fs.String("lang", "", "language label, e.g. \"Python (3.11.2)\"")
	user := fs.String("user", envOr("USER", "anonymous"), "username recorded with the submission")
	stdinPath := fs.String("stdin", "", "file whose contents are passed as stdin")
	list := fs.Bool("list", false, "list stored submissions instead of submitting")
	limit := fs.Int("limit", 0, "with -list, maximum number of rows")
	languages := fs.Bool("languages", false, "list accepted language labels")
	timeout := fs.Duration("timeout", 2*time.Minute, "request timeout")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	client := relay.New(*server)

	var (
		result any
		err    error
	)
	switch {
	case *languages:
		result, err = client.Languages(ctx)
	case *list:
		var opts *relay.ListOptions
		if *limit > 0 {
			opts = &relay.ListOptions{Limit: *limit}
		}
		result, err = client.Submissions(ctx, opts)
	default:
		if fs.NArg() != 1 || *lang == "" {
			fmt.Fprintln(errOut, "usage: relayctl -lang <label> [-user name] [-stdin file] <source file>")
			return 2
		}
		var req relay.SubmitRequest
		req, err = buildRequest(fs.Arg(0), *stdinPath, *lang, *user)
		if err == nil {
			result, err = client.Submit(ctx, req)
		}
	}
	if err != nil {
		fmt.Fprintf(errOut, "relayctl: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(errOut, "relayctl: encode result: %v\n", err)
		return 1
	}
	return 0
}

func buildRequest(srcPath, stdinPath, lang, user string) (relay.SubmitRequest, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return relay.SubmitRequest{}, err
	}
	var stdin []byte
	if stdinPath != "" {
		if stdin, err = os.ReadFile(stdinPath); err != nil {
			return relay.SubmitRequest{}, err
		}
	}
	return relay.SubmitRequest{
		Username:   user,
		Language:   lang,
		SourceCode: string(src),
		Stdin:      string(stdin),
	}, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
