package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// errReported marks a failure whose details were already written to the
// command output.
var errReported = errors.New("reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jugsolver",
		Short:         "Solve the two-jug water-measuring puzzle",
		Long:          "jugsolver finds a shortest sequence of fill, empty and transfer operations\nthat leaves a target amount of water in one of two jugs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSolveCmd(), newTokenCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading JUGS_* variables, if present")
	return cmd
}

func newSolveCmd() *cobra.Command {
	var x, y, target int
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one puzzle and print the response body as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), x, y, target)
		},
	}
	cmd.Flags().IntVar(&x, "x", 0, "capacity of jug X")
	cmd.Flags().IntVar(&y, "y", 0, "capacity of jug Y")
	cmd.Flags().IntVar(&target, "target", 0, "amount wanted")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token with JUGS_JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToken(cmd.Context(), cmd.OutOrStdout(), subject, ttl)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jugsolver %s\n", version)
		},
	}
}
