package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/engine"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/segment"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "segmenter",
		Short: "Structure-aware segmentation for regulatory documents",
		Long: `Segmenter converts regulatory PDF documents (EU, German, Swiss and UK
medical-device law texts) into semantically coherent, metadata-rich text
segments suitable for retrieval-augmented question answering.

It detects the legal-document dialect, splits at article boundaries
instead of blindly every N characters, and attaches jurisdiction,
article and chapter provenance to every segment.`,
		Version: version,
	}

	rootCmd.AddCommand(segmentCmd())
	rootCmd.AddCommand(classifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func segmentCmd() *cobra.Command {
	var (
		jsonlOut string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "segment [files or directories]",
		Short: "Segment documents and print per-document statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := collectFiles(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no supported documents found")
			}

			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelInfo
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
			eng := engine.New(log)

			inputs := make([]engine.Input, 0, len(paths))
			for _, p := range paths {
				inputs = append(inputs, engine.Input{Path: p})
			}

			segs, results := eng.SegmentBatch(inputs)

			offset := 0
			for _, res := range results {
				fmt.Printf("%s\n", strings.Repeat("=", 60))
				fmt.Printf("  %s\n", res.Filename)
				if res.Err != nil {
					fmt.Printf("  error: %v\n", res.Err)
					continue
				}
				printStats(segs[offset : offset+res.Segments])
				offset += res.Segments
			}
			fmt.Printf("\ntotal: %d segments from %d documents\n", len(segs), len(results))

			if jsonlOut != "" {
				if err := writeJSONL(jsonlOut, segs); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", jsonlOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonlOut, "jsonl", "", "write all segments to a JSON-lines file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-document progress")
	return cmd
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>",
		Short: "Print the detected document profile without segmenting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ext, err := extractor.ForFile(path)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := ext.Extract(f, filepath.Base(path))
			if err != nil {
				return err
			}
			profile := classify.Detect(doc.FullText, filepath.Base(path))

			fmt.Printf("document_title: %s\n", profile.DocumentTitle)
			fmt.Printf("document_type:  %s\n", profile.DocumentType)
			fmt.Printf("jurisdiction:   %s\n", profile.Jurisdiction)
			fmt.Printf("language:       %s\n", profile.Language)
			fmt.Printf("parser:         %s\n", profile.ParserKey)
			fmt.Printf("pages:          %d\n", doc.TotalPages())
			return nil
		},
	}
}

// collectFiles expands directories into their supported documents.
func collectFiles(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !extractor.IsSupportedExtension(e.Name()) {
				continue
			}
			paths = append(paths, filepath.Join(arg, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func printStats(segs []segment.Segment) {
	fmt.Printf("  segments: %d\n", len(segs))
	if len(segs) == 0 {
		return
	}

	meta := segs[0].Meta
	fmt.Printf("  type: %s | jurisdiction: %s | language: %s\n",
		meta.DocumentType, meta.Jurisdiction, meta.Language)

	minSize, maxSize, total := len(segs[0].Content), 0, 0
	for _, s := range segs {
		n := len(s.Content)
		if n < minSize {
			minSize = n
		}
		if n > maxSize {
			maxSize = n
		}
		total += n
	}
	fmt.Printf("  sizes: min=%d max=%d avg=%d\n", minSize, maxSize, total/len(segs))

	var ids []string
	for _, s := range segs {
		if len(ids) == 5 {
			break
		}
		if s.Meta.ArticleID != "" {
			ids = append(ids, s.Meta.ArticleID)
		}
	}
	if len(ids) > 0 {
		fmt.Printf("  first units: %s\n", strings.Join(ids, ", "))
	}
}

func writeJSONL(path string, segs []segment.Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, s := range segs {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
