package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/model/path"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Generate a learning path for the profile",
	Long: `Generate a 4-6 step learning path for the learner profile.

When generation is unavailable or the response cannot be used,
the built-in sample path is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runPath,
}

func runPath(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	profile, err := loadProfile(profileFile, a.seed.DefaultProfile)
	if err != nil {
		return err
	}

	return printPath(ctx, a.client, a.seed.DefaultPath, profile, cmd.OutOrStdout())
}

func printPath(ctx context.Context, generator advice.PathGenerator, fallback func() path.Path, profile learner.Profile, out io.Writer) error {
	result := advice.ResolvePath(ctx, generator, profile, fallback)

	fmt.Fprintf(out, "Learning path (%s)\n", result.Source)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tTITLE\tHOURS\tSTATUS")
	for i, node := range result.Nodes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%v\t%s\n", i+1, node.Type, node.Title, node.DurationHours, node.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Total: %v hours\n", result.TotalHours)
	return nil
}
