package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/fediscience/fedigraph/pkg/fedigraph"
)

// NewSoftwareCmd lists every software the dataset covers.
func NewSoftwareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "software",
		Short: "list the fediverse software covered by the dataset",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, software := range fedigraph.ListAllSoftware() {
				fmt.Println(software)
			}
		},
	}
}

// NewGraphsCmd lists the graph types available for one software.
func NewGraphsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graphs <software>",
		Short: "list the graph types available for a software",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := fedigraph.ListGraphTypes(args[0])
			if err != nil {
				return err
			}
			for _, graphType := range types {
				fmt.Println(graphType)
			}
			return nil
		},
	}
}

// NewDatesCmd lists the dated partitions of one graph.
func NewDatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dates <software> <graph-type>",
		Short: "list the available snapshot dates for a graph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader(cmd.Context())
			if err != nil {
				return err
			}
			dates, err := loader.ListAvailableDates(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			for _, date := range dates {
				fmt.Println(date)
			}
			return nil
		},
	}
}

// NewStatsCmd downloads a graph and prints its size.
func NewStatsCmd() *cobra.Command {
	var (
		flagDate    string
		flagIndex   int
		flagLargest bool
	)
	statsCmd := &cobra.Command{
		Use:   "stats <software> <graph-type>",
		Short: "download a graph and print node and edge counts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader(cmd.Context())
			if err != nil {
				return err
			}

			opts := []fedigraph.GraphOption{}
			if cmd.Flags().Changed("date") {
				opts = append(opts, fedigraph.WithDate(flagDate))
			}
			if cmd.Flags().Changed("index") {
				opts = append(opts, fedigraph.WithIndex(flagIndex))
			}
			if flagLargest {
				opts = append(opts, fedigraph.WithLargestComponent())
			}

			bar := progressbar.Default(-1, "streaming records")
			opts = append(opts, fedigraph.WithProgress(func(records int) {
				bar.Add(1)
			}))

			g, err := loader.GetGraph(cmd.Context(), args[0], args[1], opts...)
			bar.Finish()
			if err != nil {
				return err
			}

			direction := "undirected"
			if g.IsDirected() {
				direction = "directed"
			}
			fmt.Printf("%s/%s: %d nodes, %d edges (%s)\n",
				args[0], args[1], g.NodeCount(), g.EdgeCount(), direction)
			return nil
		},
	}
	statsCmd.Flags().StringVar(&flagDate, "date", fedigraph.DateLatest, "snapshot date (zero-padded, e.g. 20250203)")
	statsCmd.Flags().IntVar(&flagIndex, "index", 0, "snapshot position in ascending date order, negatives count from the end")
	statsCmd.Flags().BoolVar(&flagLargest, "largest-component", false, "keep only the largest connected component")
	return statsCmd
}

// NewMetadataCmd downloads the per-instance metadata table.
func NewMetadataCmd() *cobra.Command {
	var (
		flagDate string
		flagCSV  bool
	)
	metadataCmd := &cobra.Command{
		Use:   "metadata <software> <graph-type>",
		Short: "download the per-instance metadata table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader(cmd.Context())
			if err != nil {
				return err
			}
			df, err := loader.GetGraphMetadata(cmd.Context(), args[0], args[1], flagDate)
			if err != nil {
				return err
			}
			if flagCSV {
				return df.WriteCSV(os.Stdout)
			}
			fmt.Println(df)
			return nil
		},
	}
	metadataCmd.Flags().StringVar(&flagDate, "date", fedigraph.DateLatest, "snapshot date (zero-padded, e.g. 20250203)")
	metadataCmd.Flags().BoolVar(&flagCSV, "csv", false, "emit raw CSV instead of a rendered table")
	return metadataCmd
}
