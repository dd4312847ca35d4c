package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/internal/state"
	"github.com/seenimoa/edgardash/pkg/models"
)

func init() {
	for _, c := range []*cobra.Command{downloadTickersCmd, downloadSubmissionsCmd, downloadFilingsCmd, downloadBulkCmd} {
		c.Flags().Bool("watch", false, "follow the job until it finishes")
	}
	downloadFilingsCmd.Flags().StringSlice("forms", nil, "form types to download, e.g. 10-K,10-Q")
	downloadBulkCmd.Flags().StringSlice("cik", nil, "CIKs to download")
	downloadBulkCmd.Flags().StringSlice("forms", nil, "form types to download")
	downloadBulkCmd.Flags().String("from", "", "filed on or after (YYYY-MM-DD)")
	downloadBulkCmd.Flags().String("to", "", "filed on or before (YYYY-MM-DD)")
	downloadBulkCmd.Flags().Int("limit", 0, "maximum filings per company")

	downloadJobsCmd.Flags().Bool("active", false, "only pending and running jobs")
	downloadJobsCmd.Flags().Bool("follow", false, "with --active, keep refreshing until no job is active")
	downloadJobsCmd.Flags().Int("page", 0, "page number (0-based)")
	downloadJobsCmd.Flags().Int("size", edgar.DefaultJobsPageSize, "page size")

	downloadsCmd.AddCommand(downloadTickersCmd, downloadSubmissionsCmd, downloadFilingsCmd, downloadBulkCmd,
		downloadJobsCmd, downloadWatchCmd, downloadCancelCmd)
	rootCmd.AddCommand(downloadsCmd)
}

var downloadsCmd = &cobra.Command{
	Use:     "downloads",
	Aliases: []string{"dl"},
	Short:   "Start, watch and cancel backend download jobs",
}

func newDownloads() *state.Downloads {
	active := state.NewActiveJobs(api.Downloads, cfg.Polling.ActiveJobsInterval(), logger)
	return state.NewDownloads(api.Downloads, active)
}

// started reports a new job and optionally follows it.
func started(cmd *cobra.Command, job models.DownloadJob, err error) error {
	if err != nil {
		return err
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchJob(cmd.Context(), job.ID)
	}
	if asJSON {
		return printJSON(job)
	}
	fmt.Printf("🚀 Started %s download, job %s\n", job.Type, job.ID)
	fmt.Printf("   Follow it with: edgardash downloads watch %s\n", job.ID)
	return nil
}

var downloadTickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "Refresh the ticker-to-CIK map",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := newDownloads().StartTickers(cmd.Context())
		return started(cmd, job, err)
	},
}

var downloadSubmissionsCmd = &cobra.Command{
	Use:   "submissions <cik>",
	Short: "Download a company's submissions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cik, err := cikArg(args[0])
		if err != nil {
			return err
		}
		job, err := newDownloads().StartSubmissions(cmd.Context(), cik)
		return started(cmd, job, err)
	},
}

var downloadFilingsCmd = &cobra.Command{
	Use:   "filings <cik>",
	Short: "Download a company's filings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cik, err := cikArg(args[0])
		if err != nil {
			return err
		}
		forms, _ := cmd.Flags().GetStringSlice("forms")
		job, err := newDownloads().StartFilings(cmd.Context(), cik, forms)
		return started(cmd, job, err)
	},
}

var downloadBulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Download filings for many companies at once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringSlice("cik")
		req := models.DownloadRequest{}
		for _, r := range raw {
			cik, err := cikArg(r)
			if err != nil {
				return err
			}
			req.CIKs = append(req.CIKs, cik)
		}
		req.FormTypes, _ = cmd.Flags().GetStringSlice("forms")
		from, to, err := dateRange(cmd)
		if err != nil {
			return err
		}
		req.DateFrom, req.DateTo = from, to
		req.Limit, _ = cmd.Flags().GetInt("limit")

		job, err := newDownloads().StartBulk(cmd.Context(), req)
		return started(cmd, job, err)
	},
}

var downloadJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List download jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if onlyActive, _ := cmd.Flags().GetBool("active"); onlyActive {
			return listActive(ctx, cmd)
		}

		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		snap := state.NewJobHistory(api, page, size).Load(ctx)
		if err := snapErr(snap.Error); err != nil {
			return err
		}
		if asJSON {
			return printJSON(snap.Data)
		}
		printJobs(snap.Data.Content)
		fmt.Printf("\nPage %d of %d · %d total\n", snap.Data.Page+1, max(snap.Data.TotalPages, 1), snap.Data.TotalElements)
		return nil
	},
}

func listActive(ctx context.Context, cmd *cobra.Command) error {
	active := state.NewActiveJobs(api.Downloads, cfg.Polling.ActiveJobsInterval(), logger)
	follow, _ := cmd.Flags().GetBool("follow")
	if !follow {
		snap := active.Refresh(ctx)
		if err := snapErr(snap.Error); err != nil {
			return err
		}
		if asJSON {
			return printJSON(snap.Data)
		}
		printJobs(snap.Data)
		return nil
	}

	unsubscribe := active.Subscribe(func(s state.Snapshot[[]models.DownloadJob]) {
		if s.Loading {
			return
		}
		if s.Error != "" {
			fmt.Printf("⚠️  %s\n", s.Error)
			return
		}
		fmt.Printf("── %d active ──\n", len(s.Data))
		printJobs(s.Data)
	})
	defer unsubscribe()

	snap := active.Start(ctx)
	if err := snapErr(snap.Error); err != nil {
		return err
	}
	if done := active.Done(); done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			active.Stop()
		}
	}
	return nil
}

var downloadWatchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Follow a download job until it finishes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchJob(cmd.Context(), strings.TrimSpace(args[0]))
	},
}

// watchJob prints each job update until the job settles or ctx ends.
func watchJob(ctx context.Context, id string) error {
	w := state.NewJobWatcher(api.Downloads, cfg.Polling.JobInterval(), logger)
	var last models.JobStatus
	var lastProgress float64 = -1
	unsubscribe := w.Subscribe(func(s state.Snapshot[models.DownloadJob]) {
		if s.Loading || !s.Loaded {
			return
		}
		if s.Data.Status == last && s.Data.Progress == lastProgress {
			return
		}
		last, lastProgress = s.Data.Status, s.Data.Progress
		if !asJSON {
			printJob(s.Data)
		}
	})
	defer unsubscribe()

	snap := w.Watch(ctx, id)
	if !snap.Loaded {
		return snapErr(snap.Error)
	}
	if done := w.Done(); done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			w.Stop()
		}
	}

	final := w.State()
	if asJSON {
		return printJSON(final.Data)
	}
	if final.Data.Status == models.JobFailed {
		return fmt.Errorf("job %s failed: %s", final.Data.ID, final.Data.ErrorMessage)
	}
	return nil
}

var downloadCancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a pending or running job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newDownloads().Cancel(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("🛑 Cancelled job %s\n", args[0])
		return nil
	},
}
