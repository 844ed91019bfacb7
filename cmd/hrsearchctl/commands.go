package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	hrsearch "github.com/kailas-cloud/hrsearch/pkg/sdk"
)

func jsonEncoder(cmd *cobra.Command) *json.Encoder {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Rank employees for a free-text hiring query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			res, err := c.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if opts.json {
				return printJSON(cmd, res)
			}
			return printSearch(cmd, &res)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (1-20, default server limit)")
	return cmd
}

func printSearch(cmd *cobra.Command, res *hrsearch.SearchResult) error {
	header := fmt.Sprintf("search %s: mode=%s", res.SearchID, res.Mode)
	if res.Reason != "" {
		header += " reason=" + res.Reason
	}
	cmd.Println(header)
	if p := res.Parsed; p != nil {
		cmd.Printf("grade=%s skills=%s\n", p.Grade, strings.Join(p.Skills, ", "))
	}
	if len(res.Candidates) == 0 {
		cmd.Println("No matching employees.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tPOSITION\tSCORE\tSEMANTIC\tSKILLS")
	for i, c := range res.Candidates {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.3f\t%.3f\t%.3f\n",
			i+1, c.ID, c.FullName, c.Position, c.Score, c.SemanticScore, c.SkillsMatch)
	}
	return tw.Flush()
}

func employeeID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", arg)
	}
	return id, nil
}

func newRebuildCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild [employee-id]",
		Short: "Re-embed one employee's profile vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := employeeID(args[0])
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			res, err := c.RebuildProfile(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("rebuild failed: %w", err)
			}
			if opts.json {
				return printJSON(cmd, res)
			}
			cmd.Printf("employee %d: %s\n", res.EmployeeID, res.Status)
			return nil
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [employee-id]",
		Short: "Drop one employee's cached profile vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := employeeID(args[0])
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.DeleteProfile(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}
			cmd.Printf("employee %d: deleted\n", id)
			return nil
		},
	}
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild profile vectors for every rankable employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			st, err := c.Reindex(cmd.Context())
			if err != nil {
				return fmt.Errorf("reindex failed: %w", err)
			}
			if opts.json {
				return printJSON(cmd, st)
			}
			cmd.Printf("rebuilt=%d skipped=%d failed=%d\n", st.Rebuilt, st.Skipped, st.Failed)
			return nil
		},
	}
}

func newUsageCmd(opts *rootOptions) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show embedding token consumption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			rep, err := c.Usage(cmd.Context(), hrsearch.UsagePeriod(period))
			if err != nil {
				return fmt.Errorf("usage failed: %w", err)
			}
			if opts.json {
				return printJSON(cmd, rep)
			}
			limit := "unlimited"
			if rep.TokensLimit > 0 {
				limit = strconv.FormatInt(rep.TokensLimit, 10)
			}
			cmd.Printf("%s %s..%s: used=%d limit=%s exhausted=%v\n",
				rep.Period, rep.PeriodStart.Format("2006-01-02"), rep.PeriodEnd.Format("2006-01-02"),
				rep.TokensUsed, limit, rep.IsExhausted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "month", "day or month")
	return cmd
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			h, err := c.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health failed: %w", err)
			}
			if opts.json {
				if err := printJSON(cmd, h); err != nil {
					return err
				}
			} else {
				cmd.Printf("status: %s\n", h.Status)
				for _, name := range slices.Sorted(maps.Keys(h.Checks)) {
					cmd.Printf("  %s: %s\n", name, h.Checks[name])
				}
			}
			if h.Status != "ok" {
				return fmt.Errorf("server is %s", h.Status)
			}
			return nil
		},
	}
}
