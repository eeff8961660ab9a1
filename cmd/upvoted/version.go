// Version command for the upvoted CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/upvote/pkg/upvote"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the upvoted version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("upvoted", upvote.Version)
	},
}
