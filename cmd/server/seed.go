package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/mcp"
	"github.com/ganot/roadmap/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Import a catalog file into the database",
		Long: `Import mineral types, stages, works and questions from a YAML catalog
file. Records with the same ids are replaced. The file is validated first and
nothing is written if it is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(stderrLog)
			if err != nil {
				return err
			}
			defer rt.Close()

			s, err := importSeed(cmd.Context(), rt, args[0], tenantID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d mineral types, %d stages, %d works, %d questions.\n",
				len(s.MineralTypes), len(s.Stages), len(s.Works), len(s.Questions))
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", mcp.DefaultTenant, "tenant whose activity log records the import")
	return cmd
}

func importSeed(ctx context.Context, rt *runtime, path, tenantID string) (catalog.Seed, error) {
	s, err := seed.Load(path)
	if err != nil {
		return catalog.Seed{}, err
	}
	if err := rt.catalog.Import(ctx, s); err != nil {
		return catalog.Seed{}, err
	}

	details, _ := json.Marshal(map[string]any{
		"path":          path,
		"mineral_types": len(s.MineralTypes),
		"stages":        len(s.Stages),
		"works":         len(s.Works),
		"questions":     len(s.Questions),
	})
	entry := &activity.ActivityEntry{
		ActivityType: activity.TypeCatalogImported,
		Summary:      fmt.Sprintf("Imported catalog from %s", path),
		Details:      string(details),
	}
	if err := rt.activity.LogActivity(ctx, tenantID, entry); err != nil {
		rt.logger.Warn("failed to log catalog import", "error", err)
	}

	return s, nil
}
