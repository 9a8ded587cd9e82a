package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/infrastructure/config"
	"github.com/iho/moneybook/internal/infrastructure/postgres"
	"github.com/iho/moneybook/internal/ledger"
)

var (
	baseURL string
	timeout time.Duration
)

// errInconsistent makes the process exit non-zero after the report is printed.
var errInconsistent = errors.New("ledger is inconsistent")

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moneybook",
		Short:         "Moneybook CLI tool",
		Long:          `A command line interface for the Moneybook API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Moneybook API")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ledgerCmd := &cobra.Command{Use: "ledger", Short: "Ledger operations"}
	ledgerCmd.AddCommand(consistencyCmd())

	accountsCmd := &cobra.Command{Use: "accounts", Short: "Account operations"}
	accountsCmd.AddCommand(balancesCmd())

	recurringCmd := &cobra.Command{Use: "recurring", Short: "Recurring rule operations"}
	recurringCmd.AddCommand(materializeCmd())

	dataCmd := &cobra.Command{Use: "data", Short: "Export and import"}
	dataCmd.AddCommand(exportCmd(), importCmd())

	root.AddCommand(ledgerCmd, accountsCmd, recurringCmd, dataCmd, migrateCmd())
	return root
}

type apiClient struct {
	base string
	http *http.Client
}

func newClient() *apiClient {
	return &apiClient{base: baseURL, http: &http.Client{Timeout: timeout}}
}

// do sends a request and returns the body of a 2xx response or of a status
// listed in accept. Other statuses become errors carrying the server's message.
func (c *apiClient) do(method, path string, body io.Reader, contentType string, accept ...int) ([]byte, int, error) {
	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode >= 300 && !slices.Contains(accept, resp.StatusCode) {
		var e dto.ErrorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return nil, resp.StatusCode, fmt.Errorf("%s (status %d): %s", e.Error, resp.StatusCode, e.Message)
		}
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}
	return data, resp.StatusCode, nil
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := newClient().do(http.MethodGet, "/api/v1/ledger/consistency", nil, "", http.StatusConflict)
			if err != nil {
				return err
			}

			var report ledger.Report
			if err := json.Unmarshal(data, &report); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Accounts: %d  Transactions: %d\n", report.AccountCount, report.TransactionCount)
			fmt.Fprintf(out, "Initial: %s  Balance: %s  Destroyed: %s\n",
				report.InitialTotal.StringFixed(2), report.BalanceTotal.StringFixed(2), report.Destroyed.StringFixed(2))
			if report.OK {
				fmt.Fprintln(out, "Consistency check PASSED")
				return nil
			}

			fmt.Fprintln(out, "Consistency check FAILED")
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "  [%s] %s %s\n", issue.Kind, issue.TransactionID, issue.Detail)
			}
			return errInconsistent
		},
	}
}

func balancesCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show account balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/accounts/balances"
			if asOf != "" {
				path += "?asOf=" + url.QueryEscape(asOf)
			}
			data, _, err := newClient().do(http.MethodGet, path, nil, "")
			if err != nil {
				return err
			}

			var res dto.BalancesResponse
			if err := json.Unmarshal(data, &res); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "ACCOUNT\tBALANCE\t")
			for _, a := range res.Accounts {
				fmt.Fprintf(w, "%s\t%s\t\n", truncate(a.Name, 32), a.Balance.StringFixed(2))
			}
			fmt.Fprintf(w, "TOTAL\t%s\t\n", res.Total.StringFixed(2))
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "Balance as of date (YYYY-MM-DD)")
	return cmd
}

func materializeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materialize",
		Short: "Create due recurring transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := newClient().do(http.MethodPost, "/api/v1/recurring/materialize", nil, "")
			if err != nil {
				return err
			}

			var res dto.MaterializeResponse
			if err := json.Unmarshal(data, &res); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d transactions, advanced %d rules\n", len(res.Created), res.RulesUpdated)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		format     string
		start, end string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON or a period's transactions as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			switch format {
			case "json":
				path = "/api/v1/data/export"
			case "csv":
				q := url.Values{}
				if start != "" {
					q.Set("start", start)
				}
				if end != "" {
					q.Set("end", end)
				}
				path = "/api/v1/reports/csv"
				if len(q) > 0 {
					path += "?" + q.Encode()
				}
			default:
				return fmt.Errorf("unknown format %q, want json or csv", format)
			}

			data, _, err := newClient().do(http.MethodGet, path, nil, "")
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", len(data), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Export format: json or csv")
	cmd.Flags().StringVar(&start, "start", "", "CSV period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "CSV period end (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export, merging it into the stored data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			data, _, err := newClient().do(http.MethodPost, "/api/v1/data/import", bytes.NewReader(payload), "application/json")
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), json.RawMessage(data))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations using DATABASE_URL",
	}

	run := func(apply func(string) error, done string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := apply(cfg.DatabaseURL); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), done)
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", RunE: run(postgres.RunMigrations, "Migrations applied")},
		&cobra.Command{Use: "down", Short: "Roll back the last migration", RunE: run(postgres.RunMigrationsDown, "Migrations rolled back")},
	)
	return cmd
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(w, "failed to encode output: %v\n", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
