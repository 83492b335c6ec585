package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	addWins   int
	addLosses int
	addRating float64
)

func init() {
	addCmd.Flags().IntVar(&addWins, "wins", 0, "Initial number of wins")
	addCmd.Flags().IntVar(&addLosses, "losses", 0, "Initial number of losses")
	addCmd.Flags().Float64Var(&addRating, "rating", 0, "Explicit starting rating")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/health")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "List every player, best first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/players")
	},
}

var topCmd = &cobra.Command{
	Use:   "top [n]",
	Short: "Show the top n players (default 10)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/players/top"
		if len(args) == 1 {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("n must be an integer: %w", err)
			}
			endpoint += "?n=" + args[0]
		}
		return performGetRequest(cmd.OutOrStdout(), endpoint)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Show one player's record and rank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/player/"+url.PathEscape(args[0]))
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"name": args[0], "wins": addWins, "losses": addLosses}
		if cmd.Flags().Changed("rating") {
			body["rating"] = addRating
		}
		return performPostRequest(cmd.OutOrStdout(), "/add_player", body)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <winner> <loser>",
	Short: "Record that winner beat loser",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest(cmd.OutOrStdout(), "/record_match", map[string]string{"winner": args[0], "loser": args[1]})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a player from the ladder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest(cmd.OutOrStdout(), "/remove_player", map[string]string{"name": args[0]})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the portable form of the ladder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/export")
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the ladder's players with an exported file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return performPostRequest(cmd.OutOrStdout(), "/import", json.RawMessage(raw))
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Post the current standings to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest(cmd.OutOrStdout(), "/notify/standings", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/metrics")
	},
}

func withDryRun(endpoint string) string {
	if !dryRun {
		return endpoint
	}
	return endpoint + "?dry_run=true"
}

func performGetRequest(out io.Writer, endpoint string) error {
	url := host + endpoint
	fmt.Fprintf(out, "Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(out, resp)
}

func performPostRequest(out io.Writer, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := host + withDryRun(endpoint)
	fmt.Fprintf(out, "Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(out, resp)
}

func printResponse(out io.Writer, resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(body))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
