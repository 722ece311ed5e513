package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/millerindex"
	"github.com/hupe1980/millerindex/codec"
	"github.com/hupe1980/millerindex/lookup"
	"github.com/hupe1980/millerindex/mask"
	"github.com/hupe1980/millerindex/miller"
)

const recordsUsage = "write one {position, index, list} record per line instead of a single array"

type statsResult struct {
	lookup.Stats
	Diameter int
}

func (a *app) findCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find h,k,l [h,k,l...]",
		Short: "Resolve indices, or their symmetry equivalents, to positions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queries := make([]miller.Index, len(args))
			for i, s := range args {
				v, err := miller.Parse(s)
				if err != nil {
					return err
				}
				queries[i] = v
			}

			idx, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer idx.Close()

			out := make([]codec.FindRecord, len(queries))
			for i, v := range queries {
				pos, ok := idx.Find(v)
				out[i] = codec.FindRecord{Index: v, Position: pos, Found: ok}
			}
			return a.write(cmd, out)
		},
	}
}

func (a *app) neighbourhoodCmd() *cobra.Command {
	var (
		step     int
		position int
		records  bool
	)

	cmd := &cobra.Command{
		Use:     "neighbourhood",
		Aliases: []string{"nb"},
		Short:   "List the six axis neighbours of every position",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer idx.Close()

			if position >= 0 {
				list, err := idx.Neighbourhood(position, step)
				if err != nil {
					return err
				}
				return a.write(cmd, list)
			}

			lists, err := idx.NeighbourhoodAll(cmd.Context(), step)
			if err != nil {
				return err
			}
			return a.writeLists(cmd, idx, lists, records)
		},
	}

	cmd.Flags().IntVar(&step, "step", 1, "offset along each axis")
	cmd.Flags().IntVar(&position, "position", -1, "query a single position instead of all")
	cmd.Flags().BoolVar(&records, "records", false, recordsUsage)
	return cmd
}

func (a *app) areaCmd() *cobra.Command {
	var (
		params   millerindex.AreaParams
		maskPath string
		position int
		records  bool
	)

	cmd := &cobra.Command{
		Use:   "area",
		Short: "List each position followed by its neighbours within an L1 annulus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.Validate(); err != nil {
				return err
			}

			idx, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer idx.Close()

			var m *mask.Mask
			if maskPath != "" {
				if maskPath == "-" && a.input == "-" {
					return fmt.Errorf("input and mask cannot both be read from stdin")
				}
				m, err = loadMask(maskPath, cmd.InOrStdin(), idx.Len())
				if err != nil {
					return fmt.Errorf("read mask %s: %w", maskPath, err)
				}
			}

			if position >= 0 {
				list, err := idx.Area(position, params, m)
				if err != nil {
					return err
				}
				return a.write(cmd, list)
			}

			lists, err := idx.AreaAll(cmd.Context(), params, m)
			if err != nil {
				return err
			}
			return a.writeLists(cmd, idx, lists, records)
		},
	}

	cmd.Flags().IntVar(&params.MinDistance, "min", 1, "smallest L1 distance")
	cmd.Flags().IntVar(&params.MaxDistance, "max", 1, "largest L1 distance")
	cmd.Flags().IntVar(&params.MaxNeighbours, "cap", 32, "maximum list length, seed included")
	cmd.Flags().StringVar(&maskPath, "mask", "", "file of per-position flags (1/0); unflagged positions are skipped")
	cmd.Flags().IntVar(&position, "position", -1, "query a single position instead of all")
	cmd.Flags().BoolVar(&records, "records", false, recordsUsage)
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Describe the lookup table built for the input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer idx.Close()

			return a.write(cmd, statsResult{
				Stats:    idx.Stats(),
				Diameter: idx.Tensor().Diameter(),
			})
		},
	}
}
