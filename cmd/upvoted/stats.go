// Stats command for the upvoted CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print store statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "stats:", err)
			os.Exit(exitSysError)
		}
		defer store.Close()

		stats, err := store.Stats()
		if err != nil {
			fmt.Fprintln(os.Stderr, "stats:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "stats:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println("features:", stats.TotalFeatures)
		fmt.Println("votes:   ", stats.TotalVotes)
		if stats.TopFeature != nil {
			fmt.Printf("top:      %q (%d votes)\n", stats.TopFeature.Title, stats.TopFeature.VoteCount)
		}
		return nil
	},
}
