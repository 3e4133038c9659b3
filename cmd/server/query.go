package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/warp/production-engine/crew"
	"github.com/warp/production-engine/factory"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/inventory"
)

// =============================================================================
// SEED
// =============================================================================

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var file, scenario string
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML dataset or a built-in scenario into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (scenario == "") {
				return errors.New("exactly one of --file or --scenario is required")
			}

			var ds *factory.Dataset
			var err error
			if file != "" {
				ds, err = factory.Load(file)
			} else {
				ds, err = factory.Scenario(scenario)
			}
			if err != nil {
				return err
			}

			store, _, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if reset {
				if err := store.Reset(ctx); err != nil {
					return fmt.Errorf("failed to reset database: %w", err)
				}
			}
			if err := ds.Apply(ctx, store); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s\n", ds.Counts())
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML dataset file")
	cmd.Flags().StringVar(&scenario, "scenario", "", "built-in scenario id")
	cmd.Flags().BoolVar(&reset, "reset", false, "clear the database first")
	return cmd
}

// =============================================================================
// AVAILABILITY
// =============================================================================

func newAvailabilityCommand(opts *rootOptions) *cobra.Command {
	var start, end, exclude string
	var quantity int

	cmd := &cobra.Command{
		Use:   "availability <resource-id>",
		Short: "Show how many units of an inventory item are free over a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := generic.ParsePeriod(start, end)
			if err != nil {
				return err
			}

			store, _, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			items, err := store.ListInventory(ctx)
			if err != nil {
				return err
			}
			jobs, err := store.ListJobs(ctx)
			if err != nil {
				return err
			}
			rentals, err := store.ListRentals(ctx)
			if err != nil {
				return err
			}

			a, err := inventory.Resolve(inventory.ResourcesFrom(items), args[0], inventory.Commitments(jobs, rentals), window, exclude)
			var notFound *inventory.ResourceNotFoundError
			if errors.As(err, &notFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", notFound)
			} else if err != nil {
				return err
			}

			return opts.output(cmd.OutOrStdout(), a, func(w io.Writer) {
				printAvailability(w, a, window, quantity)
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "job or rental id to leave out")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "requested quantity to check")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func printAvailability(w io.Writer, a inventory.Availability, window generic.Period, quantity int) {
	fmt.Fprintf(w, "%s over %s\n", a.ResourceID, window)
	fmt.Fprintf(w, "  owned %d, used %d, available %d (%s%% utilized)\n",
		a.Owned, a.Used, a.Available, a.Utilization().StringFixed(2))
	if over := a.Overcommitted(); over > 0 {
		fmt.Fprintf(w, "  OVERCOMMITTED by %d\n", over)
	}
	if quantity > 0 {
		verdict := "sufficient"
		if !a.Covers(quantity) {
			verdict = "insufficient"
		}
		fmt.Fprintf(w, "  requested %d: %s\n", quantity, verdict)
	}
	if len(a.Conflicts) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  SOURCE\tID\tNAME\tQTY")
	for _, c := range a.Conflicts {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\n", c.SourceKind, c.SourceID, c.SourceName, c.Quantity)
	}
	tw.Flush()
}

// =============================================================================
// REST COMPLIANCE
// =============================================================================

func newRestCommand(opts *rootOptions) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "rest <member-id>",
		Short: "Analyze a crew member's monthly rest compliance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("invalid month %d: must be 1..12", month)
			}

			store, cfg, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			member, err := store.GetCrewMember(ctx, args[0])
			if err != nil {
				return fmt.Errorf("crew member %s: %w", args[0], err)
			}
			jobs, err := store.ListJobs(ctx)
			if err != nil {
				return err
			}

			rule := crew.Rule{MaxWorkedDaysPerWeek: cfg.Compliance.MaxWorkedDaysPerWeek}
			c, err := rule.AnalyzeMember(member, year, time.Month(month), jobs)
			if err != nil {
				return err
			}

			return opts.output(cmd.OutOrStdout(), c, func(w io.Writer) {
				printCompliance(w, member.Name, c, rule)
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year (default current)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default current)")
	return cmd
}

func printCompliance(w io.Writer, name string, c crew.Compliance, rule crew.Rule) {
	fmt.Fprintf(w, "%s (%s), %s %d\n", name, c.MemberID, c.Month, c.Year)
	fmt.Fprintf(w, "  worked %d days, missed rest %d\n", c.TotalWorked, c.MissedRest)

	surplus := make(map[generic.Week]int)
	for _, o := range c.OverflowWeeksFor(rule) {
		surplus[o.Week] = o.Surplus
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  WEEK\tWORKED\tSURPLUS")
	for _, wk := range generic.SortedWeeks(c.PerWeek) {
		fmt.Fprintf(tw, "  %s\t%d\t%d\n", wk, c.PerWeek[wk], surplus[wk])
	}
	tw.Flush()
}
