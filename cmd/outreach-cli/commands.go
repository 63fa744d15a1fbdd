// cmd/outreach-cli/commands.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"conference-outreach/internal/models"
)

func newRunCommand() *cobra.Command {
	var (
		rosterPath  string
		scrapeURL   string
		userName    string
		userRole    string
		userCompany string
		userDesc    string
	)

	cmd := &cobra.Command{
		Use:   "run <event>",
		Short: "Start a workflow run for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"event_name": args[0],
				"scrape_url": scrapeURL,
				"user": map[string]string{
					"user_name":                userName,
					"user_role":                userRole,
					"user_company_name":        userCompany,
					"user_company_description": userDesc,
				},
			}

			if rosterPath != "" {
				data, err := os.ReadFile(rosterPath)
				if err != nil {
					return err
				}
				var participants []models.Participant
				if err := json.Unmarshal(data, &participants); err != nil {
					return fmt.Errorf("parse roster %s: %w", rosterPath, err)
				}
				payload["participants"] = participants
			}

			var job models.JobStatus
			if err := post("/api/v1/workflow", payload, &job); err != nil {
				return err
			}
			fmt.Printf("job %s queued for %q\n", job.JobID, job.Event)
			return nil
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "path to a JSON participant roster")
	cmd.Flags().StringVar(&scrapeURL, "scrape-url", "", "event page to scrape when no roster is given")
	cmd.Flags().StringVar(&userName, "user-name", "", "operator name")
	cmd.Flags().StringVar(&userRole, "user-role", "", "operator role")
	cmd.Flags().StringVar(&userCompany, "user-company", "", "operator company name")
	cmd.Flags().StringVar(&userDesc, "user-company-description", "", "operator company description")
	cmd.MarkFlagRequired("user-name")
	cmd.MarkFlagRequired("user-company")

	return cmd
}

func newJobCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "job <job-id>",
		Short: "Show the status of a workflow job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for {
				var job models.JobStatus
				if err := get("/api/v1/workflow/"+url.PathEscape(args[0]), nil, &job); err != nil {
					return err
				}
				fmt.Printf("%s  %3.0f%%  %s\n", job.State, job.Progress*100, job.Message)
				if !watch || job.State == models.JobCompleted || job.State == models.JobFailed {
					return printJSON(job)
				}
				time.Sleep(time.Second)
			}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "poll until the job finishes")
	return cmd
}

func newStatusCommand() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "status <event>",
		Short: "Show the approval table for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{"event": {args[0]}}
			if status != "" {
				query.Set("status", status)
			}

			var resp struct {
				Entries []models.ApprovalEntry `json:"entries"`
			}
			if err := get("/api/v1/approvals", query, &resp); err != nil {
				return err
			}

			for _, e := range resp.Entries {
				fmt.Printf("%-30s %-12s %s\n", e.ParticipantName, e.Status, e.LastUpdated)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (Approved, Needs Edits)")
	return cmd
}

func newReviewCommand() *cobra.Command {
	var feedback string

	cmd := &cobra.Command{
		Use:   "review <event> <participant> <status>",
		Short: "Set a participant's approval status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry models.ApprovalEntry
			err := post("/api/v1/approvals", map[string]interface{}{
				"event_name":       args[0],
				"participant_name": args[1],
				"status":           args[2],
				"feedback":         feedback,
			}, &entry)
			if err != nil {
				return err
			}
			return printJSON(entry)
		},
	}

	cmd.Flags().StringVar(&feedback, "feedback", "", "reviewer feedback notes")
	return cmd
}

func newSendCommand() *cobra.Command {
	var platformURL string

	cmd := &cobra.Command{
		Use:   "send <event>",
		Short: "Simulate sending all approved messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result models.BatchResult
			err := post("/api/v1/send", map[string]interface{}{
				"event_name":   args[0],
				"platform_url": platformURL,
			}, &result)
			if err != nil {
				return err
			}
			fmt.Printf("sent %d/%d (failed %d)\n", result.Successful, result.Total, result.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&platformURL, "platform-url", "", "conference platform URL for mock screenshots")
	return cmd
}

func newReportCommand() *cobra.Command {
	var (
		userName    string
		userCompany string
	)

	cmd := &cobra.Command{
		Use:   "report <event>",
		Short: "Compile the campaign summary report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result models.ReportResult
			err := post("/api/v1/report", map[string]interface{}{
				"event_name": args[0],
				"user": map[string]string{
					"user_name":         userName,
					"user_company_name": userCompany,
				},
			}, &result)
			if err != nil {
				return err
			}
			fmt.Printf("report %s: %d participants, %d approved, %d sent\n",
				result.DocumentID, result.Metrics.TotalParticipants,
				result.Metrics.ApprovedMessages, result.Metrics.SentMessages)
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user-name", "", "operator name")
	cmd.Flags().StringVar(&userCompany, "user-company", "", "operator company name")
	cmd.MarkFlagRequired("user-name")
	cmd.MarkFlagRequired("user-company")

	return cmd
}

// ==========================
// HTTP Plumbing
// ==========================

var httpClient = &http.Client{Timeout: 30 * time.Second}

func post(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := httpClient.Post(serverAddr+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func get(path string, query url.Values, out interface{}) error {
	target := serverAddr + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	resp, err := httpClient.Get(target)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
