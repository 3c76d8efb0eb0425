package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/geometry"
)

// boundsCommand prints the canvas box of a diagram.
func (c *CLI) boundsCommand() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "bounds <diagram.json>",
		Short: "Print the canvas a diagram renders onto",
		Long: `Print the padded bounding box of a diagram's nodes.

allow-negative keeps the box where the nodes are; this is what SVG output
uses. clamp-to-origin raises a negative corner to zero.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePolicy(policy)
			if err != nil {
				return err
			}
			d, err := readDiagram(withLogger(cmd.Context(), c.Logger), args[0])
			if err != nil {
				return err
			}

			b := geometry.Bounds(d, p)
			printKeyValue("policy", p.String())
			printKeyValue("nodes", StyleNumber.Render(fmt.Sprint(len(d.Nodes()))))
			printKeyValue("min", fmt.Sprintf("%g, %g", b.MinX, b.MinY))
			printKeyValue("max", fmt.Sprintf("%g, %g", b.MaxX, b.MaxY))
			printKeyValue("size", fmt.Sprintf("%g x %g", b.Width(), b.Height()))
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", geometry.AllowNegative.String(), "origin policy: allow-negative, clamp-to-origin")
	return cmd
}

func parsePolicy(s string) (geometry.Policy, error) {
	for _, p := range []geometry.Policy{geometry.AllowNegative, geometry.ClampToOrigin} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "invalid policy: %s (must be %s or %s)", s, geometry.AllowNegative, geometry.ClampToOrigin)
}

// validateCommand checks edge references.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <diagram.json>",
		Short: "Report edges whose endpoints do not exist",
		Long: `Report edges whose source or target is not a node of the diagram.

Rendering skips such edges; render --strict refuses the diagram instead.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(withLogger(cmd.Context(), c.Logger), args[0])
			if err != nil {
				return err
			}

			err = d.Validate()
			var dangling *errors.DanglingReferenceError
			if stderrors.As(err, &dangling) {
				for _, r := range dangling.Refs {
					printError("edge %s: %s %q does not exist", r.EdgeID, r.End, r.NodeID)
				}
				return err
			}
			if err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printDetail("%d nodes, %d edges", len(d.Nodes()), len(d.Edges()))
			return nil
		},
	}
}
