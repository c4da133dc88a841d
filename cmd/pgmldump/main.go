// pgmldump parses PGML diagram files and prints the reconstructed shape
// tree, optionally exporting it to a msgpack payload for downstream
// tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"pgml/reader"
	"pgml/shape"
)

var rootCmd = &cobra.Command{
	Use:   "pgmldump [flags] <file.pgml|directory>",
	Short: "Parse PGML diagram files and dump the shape tree",
	Long: `pgmldump reads one PGML file, or every *.pgml file below a directory,
reconstructs the shape scene graph and prints it. Documents carrying href
model references cannot be resolved from the command line and fail.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func main() {
	rootCmd.Flags().String("translations", "", "TOML manifest of legacy type name translations")
	rootCmd.Flags().String("out", "", "write the parsed scene graph to a msgpack file (single file input only)")
	rootCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress the tree dump, report errors only")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	manifest, err := cmd.Flags().GetString("translations")
	if err != nil {
		return err
	}
	translations, err := loadTranslations(manifest)
	if err != nil {
		return err
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	color.NoColor = !(colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)))

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return dumpFile(cmd, path, translations, quiet)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	return dumpDir(path, translations, jobs, quiet)
}

func newParser(translations map[string]string) *reader.Parser {
	p := reader.New(nil)
	for from, to := range translations {
		p.AddTranslation(from, to)
	}
	return p
}

func dumpFile(cmd *cobra.Command, path string, translations map[string]string, quiet bool) error {
	d, err := newParser(translations).ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if d == nil {
		return fmt.Errorf("%s: not a pgml document", path)
	}
	if !quiet {
		printDiagram(os.Stdout, d)
	}

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if out != "" {
		if err := writeExport(out, d); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

func dumpDir(dir string, translations map[string]string, jobs int, quiet bool) error {
	files, err := listPGMLFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *.pgml files under %s", dir)
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	diagrams := make([]*shape.Diagram, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			d, err := newParser(translations).ReadFile(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			diagrams[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, d := range diagrams {
		if d == nil {
			fmt.Fprintf(os.Stderr, "%s: not a pgml document\n", files[i])
			continue
		}
		if !quiet {
			fmt.Printf("== %s ==\n", files[i])
			printDiagram(os.Stdout, d)
		}
	}
	return nil
}

func listPGMLFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".pgml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
