package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timeless-residents/handson-drawio-api/internal/demo"
)

// demoCommand renders a built-in sample diagram.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		flags renderFlags
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "demo [" + strings.Join(demo.Names(), "|") + "]",
		Short: "Render a built-in sample diagram",
		Long: `Render a built-in sample diagram. Without arguments the samples are
listed. Add json to --format to get the diagram source for render.`,
		Example:   `  drawio demo datastore -f svg,png,json`,
		ValidArgs: demo.Names(),
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				fmt.Println(StyleTitle.Render("Sample diagrams"))
				for _, name := range demo.Names() {
					d, _ := demo.Get(name)
					printKeyValue(name, d.Title)
				}
				return nil
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			d, err := demo.Get(args[0])
			if err != nil {
				return err
			}

			opts := flags.options(cmd, cfg.Render)
			opts.Output = basePath(flags.output, args[0])
			return c.runRender(ctx, d, opts, cfg.Cache, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the samples")
	return cmd
}
