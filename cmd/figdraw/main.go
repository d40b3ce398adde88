package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/figdraw"
	"github.com/jsvensson/figdraw/internal/format"
)

var (
	flagOutput  string
	flagVerbose int
	flagCheck   bool
	version     = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "figdraw",
	Short:   "Render declarative scene files to raster images",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [scene file]",
	Short: "Render a scene file to an image",
	Long:  "Render a JSON or HCL scene file to an image. The output format is implied by the output file extension (png, jpeg, gif, bmp, tiff).",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format HCL scene files",
	Long:  "Format one or more HCL scene files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output image path (default: scene name with .png)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	scenePath := args[0]

	sc, err := figdraw.Load(scenePath)
	if err != nil {
		return err
	}

	cv, err := figdraw.Render(sc)
	if err != nil {
		return err
	}

	outPath := flagOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(scenePath, filepath.Ext(scenePath)) + ".png"
	}

	if err := cv.Save(outPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s to %s\n", scenePath, outPath)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
