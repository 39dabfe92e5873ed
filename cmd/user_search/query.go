package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/sajidahmed21/LearnR/internal/search"
	"github.com/sajidahmed21/LearnR/services"
)

func newQueryCmd(c *cli) *cobra.Command {
	var (
		query      string
		searchType string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one autocomplete search and print the JSON payload",
		Example: `  user_search query -q jo
  user_search query -q jo -t by-handle -l 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = userStore.Close() }()

			svc, err := search.NewService(userStore, search.Options{
				MaxLimit:          c.settings.MaxLimit,
				DeterministicTies: c.settings.DeterministicTies,
			})
			if err != nil {
				return err
			}

			req := services.SearchRequest{Query: query, Type: searchType}
			if cmd.Flags().Changed("limit") {
				req.Limit = &limit
			}

			result, err := svc.Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search string")
	cmd.Flags().StringVarP(&searchType, "type", "t", string(services.SearchCombined), "Search type: by-display-name, by-handle or combined")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of suggestions (unlimited when omitted)")

	return cmd
}
