/*
 * list-runs prints the recorded runs, or the step statistics of one run,
 * from the database configured in the environment
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/gravity-particles/db"
	"github.com/suxatcode/gravity-particles/db/postgres"
)

func printRuns(w io.Writer, runs []db.Run) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED\tPARTICLES\tTHETA\tG")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%g\t%g\n",
			run.ID, run.Name, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Particles, run.Config.Theta, run.Config.G)
	}
	return tw.Flush()
}

func printStepRecords(w io.Writer, records []db.StepRecord) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tPARTICLES\tEXCLUDED\tNODES\tTREE\tFORCE\tINTEGRATE\tMIN\tMAX")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%v\t%v\t%v\t%g\t%g\n",
			r.Step, r.Particles, r.Excluded, r.Nodes, r.TreeTime, r.ForceTime, r.IntegrateTime, r.MinNorm, r.MaxNorm)
	}
	return tw.Flush()
}

func list(ctx context.Context, w io.Writer, backend db.DB, runID string) error {
	if runID == "" {
		runs, err := backend.Runs(ctx)
		if err != nil {
			return err
		}
		return printRuns(w, runs)
	}
	records, err := backend.StepRecords(ctx, runID)
	if err != nil {
		return err
	}
	return printStepRecords(w, records)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	var runID string
	flag.StringVar(&runID, "run", "", "print the step statistics of this run instead of all runs")
	flag.Parse()

	conf := db.GetEnvConfig()
	backend, err := postgres.NewPostgresDB(conf)
	if err != nil {
		log.Fatal().Msgf("%v: connecting to '%s' as '%s' failed", err, conf.PGHost, conf.PGUser)
	}
	if err := list(context.Background(), os.Stdout, backend, runID); err != nil {
		log.Fatal().Msgf("%v", err)
	}
}
