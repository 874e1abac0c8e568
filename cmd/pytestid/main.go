package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/glesirok/pytestid/pkg/caseid"
	"github.com/glesirok/pytestid/pkg/processor"
)

var (
	logLevel string

	// to-selector
	projectRoot  string
	itemPath     string
	itemClass    string
	itemName     string
	itemNodeID   string
	locationPath string
	locationName string

	// batch
	input   string
	output  string
	dryRun  bool
	filters []string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pytestid",
		Short: "Translate test case ids between selectors and pytest node ids",
		Long: `pytestid translates test case identifiers between the selector format
(path?Class/case/[data-drive]) and pytest node ids (path::Class::case[data-drive]).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newToNativeCmd(), newNormalizeCmd(), newToSelectorCmd(), newBatchCmd())
	return rootCmd
}

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return nil
}

func newToNativeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-native SELECTOR...",
		Short: "Convert selectors to pytest node ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, selector := range args {
				fmt.Fprintln(out, caseid.ToNative(selector))
			}
			return nil
		},
	}
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize NODEID...",
		Short: "Convert pytest node ids to selectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSelectors(cmd.OutOrStdout(), args)
		},
	}
}

func printSelectors(out io.Writer, nodeIDs []string) error {
	for _, nodeID := range nodeIDs {
		selector, err := caseid.NormalizeNodeID(nodeID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, selector)
	}
	return nil
}

func newToSelectorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "to-selector",
		Short: "Convert a collected test item to a selector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item := caseid.Item{
				Path:   itemPath,
				Class:  itemClass,
				Name:   itemName,
				NodeID: itemNodeID,
				Location: caseid.Location{
					Path: locationPath,
					Name: locationName,
				},
			}
			if item.Shape() == caseid.ShapeLocation && locationPath == "" {
				return fmt.Errorf("one of --path, --nodeid or --location-path is required")
			}

			selector, err := caseid.FromItem(item, projectRoot)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), selector)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRoot, "root", "r", ".", "Project root used to compute relative paths")
	cmd.Flags().StringVar(&itemPath, "path", "", "Test file path")
	cmd.Flags().StringVar(&itemClass, "class", "", "Enclosing class name")
	cmd.Flags().StringVar(&itemName, "name", "", "Test case name")
	cmd.Flags().StringVar(&itemNodeID, "nodeid", "", "Full pytest node id")
	cmd.Flags().StringVar(&locationPath, "location-path", "", "Relative path from the item location")
	cmd.Flags().StringVar(&locationName, "location-name", "", "Dotted name from the item location")
	return cmd
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Translate the requests of manifest files",
		Long: `batch reads YAML or JSON manifests and writes the translated results.
Each <name>.yaml manifest produces <name>.out.yaml next to it, or under --output.`,
		RunE: runBatch,
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Manifest file or directory (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file/directory (optional, defaults to <name>.out.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry-run mode: print results without writing files")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Keep results matching glob[?name|?@regex@] (repeatable)")

	cmd.MarkFlagRequired("input")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	// 创建处理器
	proc, err := processor.NewProcessor(filters, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("create processor: %w", err)
	}

	// 判断输入类型
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	out := cmd.OutOrStdout()
	if info.IsDir() {
		// 目录模式
		if err := proc.ProcessDirectory(input, output, dryRun); err != nil {
			return err
		}
		if !dryRun {
			fmt.Fprintln(out, "✓ All manifests processed successfully")
		}
		return nil
	}

	// 文件模式
	outputFile := output
	if outputFile == "" {
		outputFile = processor.OutputPath(input)
	}
	if err := proc.ProcessFile(input, outputFile, dryRun); err != nil {
		return err
	}
	if !dryRun {
		fmt.Fprintf(out, "✓ Processed: %s → %s\n", input, outputFile)
	}
	return nil
}
