package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	blogerrors "github.com/bitsbytes/blog/internal/errors"
	"github.com/bitsbytes/blog/pkg/assets"
	"github.com/bitsbytes/blog/pkg/layout"
	"github.com/bitsbytes/blog/pkg/pages"
	"github.com/bitsbytes/blog/pkg/render"
	"github.com/bitsbytes/blog/pkg/server"
	"github.com/bitsbytes/blog/pkg/theme"
	"github.com/bitsbytes/blog/web"
)

func renderCmd() *cobra.Command {
	var (
		configPath string
		themeName  string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Render one page to stdout",
		Long: `Render the page at path through the root layout and print the
document. --theme stands in for the color-theme cookie; without it the
page renders as a first-time visitor sees it.

Examples:
  blog render
  blog render /about --theme=dark
  blog render /posts/hello --pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
			if err != nil {
				return blogerrors.New("E130").WithDetail("Invalid page path " + path).Wrap(err)
			}
			if themeName != "" {
				if _, ok := theme.Parse(themeName); !ok {
					return invalidTheme(themeName)
				}
				req.AddCookie(&http.Cookie{Name: theme.CookieName, Value: themeName})
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			child, err := server.SourceFromConfig(cfg).Lookup(req.Context(), req.URL.Path)
			switch {
			case errors.Is(err, pages.ErrNotFound):
				warn(cmd, "No page at %s, rendering the not-found page", req.URL.Path)
				child = layout.NotFoundPage()
			case err != nil:
				return blogerrors.FromError(err, "E110")
			}

			manifest, err := assets.Fingerprint(web.Static(), web.StyleSheet)
			if err != nil {
				return blogerrors.FromError(err, "E110")
			}
			resolver := assets.NewResolver(manifest, cfg.Static.Prefix)

			l := layout.New(
				layout.WithRenderer(render.NewRenderer(render.RendererConfig{Pretty: pretty, Indent: "  "})),
				layout.WithStyleSheets(resolver.Asset(web.StyleSheet)),
			)
			return l.Render(cmd.OutOrStdout(), req, child)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a configuration file")
	cmd.Flags().StringVarP(&themeName, "theme", "t", "", "Color theme cookie value (light or dark)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")

	return cmd
}

func invalidTheme(name string) error {
	return blogerrors.New("E130").
		WithDetail("Unknown theme \"" + name + "\"").
		WithSuggestion("Use --theme=light or --theme=dark")
}
