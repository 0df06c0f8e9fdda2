package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/domain/chart"
	"github.com/ganot/roadmap/internal/seed"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	mineralTypeID int64
	startStageID  int64
	questionID    int64
	catalogPath   string
	indent        bool
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a roadmap and print its document",
		Long: `Build a roadmap and print its canonical JSON document to stdout.

The catalog is read from the database, or from a YAML catalog file when
--catalog is given. Stages whose dependencies are placed after them by
order are reported on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.mineralTypeID, "mineral-type", 0, "mineral type id")
	flags.Int64Var(&opts.startStageID, "start-stage", 0, "start stage id")
	flags.Int64Var(&opts.questionID, "question", 0, "question id limiting the target stages")
	flags.StringVar(&opts.catalogPath, "catalog", "", "YAML catalog file to build from instead of the database")
	flags.BoolVar(&opts.indent, "indent", false, "indent the JSON output (default when stdout is a terminal)")
	_ = cmd.MarkFlagRequired("mineral-type")
	_ = cmd.MarkFlagRequired("start-stage")

	return cmd
}

func runBuild(cmd *cobra.Command, opts buildOptions) error {
	snap, err := loadBuildSnapshot(cmd, opts.catalogPath)
	if err != nil {
		return err
	}

	req := chart.Request{
		MineralTypeID: opts.mineralTypeID,
		StartStageID:  opts.startStageID,
	}
	if cmd.Flags().Changed("question") {
		q := opts.questionID
		req.QuestionID = &q
	}

	doc, err := chart.Build(snap, req)
	if err != nil {
		return err
	}
	if err := chart.ValidateDocument(doc); err != nil {
		return err
	}

	data, err := doc.Encode()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	indent := opts.indent
	if !cmd.Flags().Changed("indent") {
		indent = isTerminal(out)
	}
	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("indent chart document: %w", err)
		}
		data = buf.Bytes()
	}

	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}

	for _, c := range chart.OrderConflicts(doc) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: stage %d depends on stage %d, which is ordered after it\n",
			c.StageID, c.DependencyID)
	}
	return nil
}

func loadBuildSnapshot(cmd *cobra.Command, catalogPath string) (*catalog.Snapshot, error) {
	if catalogPath != "" {
		s, err := seed.Load(catalogPath)
		if err != nil {
			return nil, err
		}
		if err := catalog.ValidateSeed(s); err != nil {
			return nil, err
		}
		return catalog.NewSnapshot(s.MineralTypes, s.Stages, s.Works, s.Questions), nil
	}

	rt, err := newRuntime(stderrLog)
	if err != nil {
		return nil, err
	}
	defer rt.Close()

	return rt.catalog.Snapshot(cmd.Context())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
