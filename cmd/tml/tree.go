package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tml/pkg/render"
)

func newTreeCmd(a *app) *cobra.Command {
	var geometry bool
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the element tree of a markup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), render.Tree(doc.Element, geometry))
			return err
		},
	}
	cmd.Flags().BoolVarP(&geometry, "geometry", "g", false, "show laid-out boxes")
	return cmd
}
