package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talegraph/talegraph/internal/server"
	apperrors "github.com/talegraph/talegraph/pkg/errors"
	"github.com/talegraph/talegraph/pkg/render"
)

// newRenderCmd creates the render command, which writes the timeline
// diagram to a DOT or SVG file.
func newRenderCmd() *cobra.Command {
	var (
		output  string
		format  string
		theme   string
		chapter string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the timeline diagram to a file",
		Long: `Render builds the timeline model from the snapshot (or the source,
with --refresh) and writes the diagram to a file. The format is taken
from the output extension unless --format is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			src, cleanup, err := newSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			store, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := server.NewService(src, store, cfg.DatabaseID, logger)
			if err := svc.Load(ctx, refresh); err != nil {
				return err
			}
			model, _, _ := svc.Model()

			if theme == "" {
				theme = cfg.Theme
			}
			if chapter != "" {
				if _, ok := model.Node(chapter); !ok {
					printWarning("chapter %q not found, rendering without selection", chapter)
					chapter = ""
				}
			}

			dot := render.ToDOT(model, render.Options{
				Theme:    render.Theme(theme),
				Selected: chapter,
			})

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = render.RenderSVG(ctx, dot)
				if err != nil {
					return err
				}
			default:
				return apperrors.New(apperrors.ErrCodeRender, "unknown format %q (must be svg or dot)", format)
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeRender, err, "write %s", output)
			}

			printSuccess("Wrote %s", output)
			printKeyValue("Format", format)
			printKeyValue("Chapters", model.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "timeline.svg", "output file")
	cmd.Flags().StringVar(&format, "format", "", "output format: svg or dot (default from extension)")
	cmd.Flags().StringVar(&theme, "theme", "", "diagram theme: light or dark (default from config)")
	cmd.Flags().StringVar(&chapter, "chapter", "", "chapter to highlight")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch from the source instead of the snapshot")
	return cmd
}
