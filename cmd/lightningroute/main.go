// Command lightningroute turns text or a document into a mind map from the
// command line.
//
//	lightningroute -text "Photosynthesis converts light..." -out map.json
//	lightningroute -file notes.pdf -dir ./outline
//	cat notes.txt | lightningroute
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/brunobiangulo/lightningroute"
	"github.com/brunobiangulo/lightningroute/dirtree"
	"github.com/brunobiangulo/lightningroute/graph"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "lightningroute:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fset := flag.NewFlagSet("lightningroute", flag.ContinueOnError)
	configPath := fset.String("config", "", "Path to config file (JSON or YAML)")
	text := fset.String("text", "", "Text to map")
	file := fset.String("file", "", "Document to map (txt, md, pdf, docx, xlsx)")
	out := fset.String("out", "", "Write the mind map JSON to this file instead of stdout")
	dir := fset.String("dir", "", "Also create the mind map as nested directories under this path")
	audience := fset.String("audience", "", "Reader level: beginner or experienced")
	verbose := fset.Bool("v", false, "Verbose logging")
	if err := fset.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg := lightningroute.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = lightningroute.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if *audience != "" {
		cfg.Audience = *audience
	}

	engine, err := lightningroute.New(cfg, lightningroute.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if t := cfg.RequestTimeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	var g *graph.Graph
	switch {
	case *text != "" && *file != "":
		return errors.New("-text and -file are mutually exclusive")
	case *file != "":
		g, err = engine.GenerateMapFromFile(ctx, *file)
	case *text != "":
		g, err = engine.GenerateMap(ctx, *text)
	default:
		data, rerr := io.ReadAll(stdin)
		if rerr != nil {
			return fmt.Errorf("reading stdin: %w", rerr)
		}
		g, err = engine.GenerateMap(ctx, string(data))
	}
	if err != nil {
		return fmt.Errorf("failed to generate mind map: %w", err)
	}
	log.Info("mind map generated", "nodes", len(g.Nodes), "edges", len(g.Edges))

	if *dir != "" {
		roots, err := dirtree.Materialize(g, *dir)
		if err != nil {
			return err
		}
		log.Info("directory tree created", "roots", roots)
	}

	return writeGraph(g, *out, stdout)
}

func writeGraph(g *graph.Graph, path string, stdout io.Writer) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding mind map: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
