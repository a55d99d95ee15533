package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	blogerrors "github.com/bitsbytes/blog/internal/errors"
	"github.com/bitsbytes/blog/pkg/layout"
	"github.com/bitsbytes/blog/pkg/theme"
)

func tokensCmd() *cobra.Command {
	var (
		themeName string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the color tokens",
		Long: `Print the CSS custom properties of each color theme.

The css format prints one rule per theme, selected by the root
data-color-theme attribute. The json format prints a name to value map
per theme.

Examples:
  blog tokens
  blog tokens --theme=dark
  blog tokens --format=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes := theme.All()
			if themeName != "" {
				t, ok := theme.Parse(themeName)
				if !ok {
					return invalidTheme(themeName)
				}
				themes = []theme.Theme{t}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "css":
				for i, t := range themes {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprint(out, theme.TokensFor(t).CSS(selector(t)))
				}
				return nil
			case "json":
				sets := make(map[string]theme.Tokens, len(themes))
				for _, t := range themes {
					sets[t.String()] = theme.TokensFor(t)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sets)
			default:
				return blogerrors.New("E130").
					WithDetail("Unknown format \"" + format + "\"").
					WithSuggestion("Use --format=css or --format=json")
			}
		},
	}

	cmd.Flags().StringVarP(&themeName, "theme", "t", "", "Only print this theme (light or dark)")
	cmd.Flags().StringVarP(&format, "format", "f", "css", "Output format: css or json")

	return cmd
}

func selector(t theme.Theme) string {
	return fmt.Sprintf(":root[%s=%q]", layout.AttrColorTheme, t.String())
}
