// Command depdoc works with dependency-parsed documents in CoNLL-U form:
// render views, noun chunks, span merges, and an HTTP API server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kittclouds/depdoc/internal/api"
	"github.com/kittclouds/depdoc/internal/config"
	"github.com/kittclouds/depdoc/internal/conllu"
	"github.com/kittclouds/depdoc/pkg/chunker"
	"github.com/kittclouds/depdoc/pkg/deptree"
	"github.com/kittclouds/depdoc/pkg/render"
)

const version = "0.1.0"

// CLI defines the command-line interface for depdoc.
var CLI struct {
	Lang string `name:"lang" short:"l" default:"en" help:"Language identifier for chunk schemes"`

	Render  RenderCmd  `cmd:"" help:"Print the {words, arcs} render view of each sentence"`
	Chunks  ChunksCmd  `cmd:"" help:"Extract noun chunks from each sentence"`
	Merge   MergeCmd   `cmd:"" help:"Merge a subtree-aligned token span and print the result"`
	Serve   ServeCmd   `cmd:"" help:"Start the HTTP API server"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// readInput opens path, or stdin when path is "-".
func readInput(path string) ([]*deptree.Document, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return conllu.Read(r, CLI.Lang)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderCmd prints render views.
type RenderCmd struct {
	Input string `arg:"" default:"-" help:"CoNLL-U file (default stdin)"`
}

func (c *RenderCmd) Run() error {
	docs, err := readInput(c.Input)
	if err != nil {
		return err
	}
	parses := make([]render.Parse, len(docs))
	for i, doc := range docs {
		parses[i] = render.Build(doc)
	}
	return printJSON(parses)
}

// ChunksCmd prints noun chunks, one line per chunk.
type ChunksCmd struct {
	Input string `arg:"" default:"-" help:"CoNLL-U file (default stdin)"`
	JSON  bool   `name:"json" help:"Emit JSON instead of text lines"`
}

func (c *ChunksCmd) Run() error {
	ext, err := chunker.New(CLI.Lang)
	if err != nil {
		return err
	}
	docs, err := readInput(c.Input)
	if err != nil {
		return err
	}
	all := make([][]chunker.Chunk, len(docs))
	for i, doc := range docs {
		chunks, err := ext.Extract(doc)
		if err != nil {
			return err
		}
		all[i] = chunks
	}
	if c.JSON {
		return printJSON(all)
	}
	for i, chunks := range all {
		for _, ch := range chunks {
			fmt.Printf("%d\t[%d,%d)\t%s\n", i, ch.Span.Start, ch.Span.End, ch.Text)
		}
	}
	return nil
}

// MergeCmd merges one span in one sentence and writes the documents back
// out as CoNLL-U.
type MergeCmd struct {
	Input string `arg:"" default:"-" help:"CoNLL-U file (default stdin)"`
	Sent  int    `name:"sent" default:"0" help:"Sentence index"`
	Start int    `name:"start" required:"" help:"Span start (inclusive)"`
	End   int    `name:"end" required:"" help:"Span end (exclusive)"`
}

func (c *MergeCmd) Run() error {
	docs, err := readInput(c.Input)
	if err != nil {
		return err
	}
	if c.Sent < 0 || c.Sent >= len(docs) {
		return fmt.Errorf("sentence %d out of range [0,%d)", c.Sent, len(docs))
	}
	if _, err := docs[c.Sent].Merge(c.Start, c.End); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := conllu.Write(os.Stdout, doc); err != nil {
			return err
		}
	}
	return nil
}

// ServeCmd runs the HTTP API.
type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()
	srv := api.NewServer(log, cfg)
	log.Info("listening", "port", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, srv)
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("depdoc " + version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("depdoc"),
		kong.Description("Dependency-annotated document tooling"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
