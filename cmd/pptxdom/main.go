package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dgallion1/pptxdom/internal/api"
	"github.com/dgallion1/pptxdom/internal/config"
	"github.com/dgallion1/pptxdom/internal/deck"
	"github.com/dgallion1/pptxdom/internal/report"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:          "pptxdom",
		Short:        "Inspect and edit charts and SmartArt in .pptx decks",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log drawing cache sync details")

	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(setTextCmd())
	rootCmd.AddCommand(relabelCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openDeck(path string) (*deck.Deck, error) {
	return deck.OpenFile(path, deck.WithLogger(logger()))
}

// outputPath defaults to "<name>.edited.pptx" next to the input.
func outputPath(in, out string) string {
	if out != "" {
		return out
	}
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + ".edited" + ext
}

func save(d *deck.Deck, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("save deck: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func inspectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect [file.pptx]",
		Short: "Outline the charts and SmartArt of a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeck(args[0])
			if err != nil {
				return err
			}
			outline, err := report.Build(d, filepath.Base(args[0]))
			if err != nil {
				return err
			}

			switch format {
			case "markdown", "md":
				fmt.Print(outline.Markdown())
			case "html":
				html, err := outline.HTML()
				if err != nil {
					return err
				}
				os.Stdout.Write(html)
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(outline)
			default:
				return fmt.Errorf("unknown format %q (json, markdown, html)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: json, markdown or html")
	return cmd
}

func setTextCmd() *cobra.Command {
	var (
		edit deck.Edit
		out  string
	)

	cmd := &cobra.Command{
		Use:   "set-text [file.pptx]",
		Short: "Replace the text of a SmartArt node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit.Op = deck.OpSetNodeText
			return applyEdits(args[0], outputPath(args[0], out), []deck.Edit{edit})
		},
	}

	cmd.Flags().IntVar(&edit.Slide, "slide", 1, "slide number, starting at 1")
	cmd.Flags().StringVar(&edit.Shape, "shape", "", "graphic frame name (default: first SmartArt on the slide)")
	cmd.Flags().IntVar(&edit.Node, "node", 0, "node index, starting at 0")
	cmd.Flags().StringVar(&edit.Text, "text", "", "new node text")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path")
	cmd.MarkFlagRequired("text")
	return cmd
}

func relabelCmd() *cobra.Command {
	var (
		edit deck.Edit
		out  string
	)

	cmd := &cobra.Command{
		Use:   "relabel [file.pptx]",
		Short: "Replace the leaf category labels of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit.Op = deck.OpRelabelCategories
			return applyEdits(args[0], outputPath(args[0], out), []deck.Edit{edit})
		},
	}

	cmd.Flags().IntVar(&edit.Slide, "slide", 1, "slide number, starting at 1")
	cmd.Flags().StringVar(&edit.Shape, "shape", "", "graphic frame name (default: first chart on the slide)")
	cmd.Flags().IntVar(&edit.Plot, "plot", 0, "plot index within the chart")
	cmd.Flags().StringSliceVar(&edit.Labels, "labels", nil, "comma-separated leaf labels, one per category")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path")
	cmd.MarkFlagRequired("labels")
	return cmd
}

func applyCmd() *cobra.Command {
	var editsPath, out string

	cmd := &cobra.Command{
		Use:   "apply [file.pptx]",
		Short: "Apply a JSON list of edits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(editsPath)
			if err != nil {
				return fmt.Errorf("read edits: %w", err)
			}
			var edits []deck.Edit
			if err := json.Unmarshal(b, &edits); err != nil {
				return fmt.Errorf("parse edits: %w", err)
			}
			return applyEdits(args[0], outputPath(args[0], out), edits)
		},
	}

	cmd.Flags().StringVarP(&editsPath, "edits", "e", "", "JSON file with an array of edits")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path")
	cmd.MarkFlagRequired("edits")
	return cmd
}

// applyEdits stops at the first failing edit and writes nothing.
func applyEdits(in, out string, edits []deck.Edit) error {
	d, err := openDeck(in)
	if err != nil {
		return err
	}
	for i, e := range edits {
		if err := d.Apply(e); err != nil {
			return fmt.Errorf("edit %d (%s): %w", i, e.Op, err)
		}
	}
	return save(d, out)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return api.Run(ctx, cfg, log)
		},
	}
}
