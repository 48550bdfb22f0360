package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(disputesCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(metricsCmd)

	searchCmd.Flags().StringVar(&queueID, "queue", "", "The queue id to search on")
	searchCmd.Flags().StringVar(&userID, "user", "", "The searching user id")
	searchCmd.MarkFlagRequired("queue")
	searchCmd.MarkFlagRequired("user")

	statusCmd.Flags().StringVar(&ticketID, "ticket", "", "The matchmaking ticket id")
	statusCmd.MarkFlagRequired("ticket")

	checkinCmd.Flags().StringVar(&matchID, "match", "", "The match id")
	checkinCmd.Flags().StringVar(&userID, "user", "", "The checking-in user id")
	checkinCmd.MarkFlagRequired("match")
	checkinCmd.MarkFlagRequired("user")

	draftCmd.Flags().StringVar(&matchID, "match", "", "The match id")
	draftCmd.Flags().StringVar(&userID, "user", "", "The acting user id")
	draftCmd.Flags().StringVar(&agentID, "agent", "", "The agent to ban or pick")
	draftCmd.Flags().StringVar(&actionType, "type", "", "The action type (BAN_A, BAN_B, PICK_A, PICK_B)")
	draftCmd.MarkFlagRequired("match")
	draftCmd.MarkFlagRequired("user")
	draftCmd.MarkFlagRequired("agent")
	draftCmd.MarkFlagRequired("type")

	resultCmd.Flags().StringVar(&matchID, "match", "", "The match id")
	resultCmd.Flags().StringVar(&metricType, "metric", "score", "The metric type of the result")
	resultCmd.Flags().Float64Var(&value, "value", 0, "The achieved metric value")
	resultCmd.Flags().StringVar(&proofURL, "proof", "", "URL of the proof upload")
	resultCmd.MarkFlagRequired("match")

	confirmCmd.Flags().StringVar(&matchID, "match", "", "The match id")
	confirmCmd.Flags().StringVar(&userID, "user", "", "The confirming user id")
	confirmCmd.MarkFlagRequired("match")
	confirmCmd.MarkFlagRequired("user")

	disputesCmd.Flags().StringVar(&matchID, "match", "", "Filter disputes by match id")

	standingsCmd.Flags().StringVar(&leagueID, "league", "", "The league id")
	standingsCmd.MarkFlagRequired("league")
}

var (
	queueID    string
	userID     string
	ticketID   string
	matchID    string
	agentID    string
	actionType string
	metricType string
	value      float64
	proofURL   string
	leagueID   string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the matches in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Enter matchmaking on a queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matchmaking/search", map[string]any{
			"queue_id": queueID,
			"user_id":  userID,
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Poll a matchmaking ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matchmaking/status?ticketID=" + url.QueryEscape(ticketID))
	},
}

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check in for a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches/checkin", map[string]any{
			"match_id": matchID,
			"user_id":  userID,
		})
	},
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Submit a draft ban or pick",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/draft/action", map[string]any{
			"match_id": matchID,
			"user_id":  userID,
			"agent_id": agentID,
			"type":     actionType,
		})
	},
}

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Submit a match result proof",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/result", map[string]any{
			"match_id":    matchID,
			"metric_type": metricType,
			"value":       value,
			"proof_url":   proofURL,
		})
	},
}

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm a submitted result",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/confirm", map[string]any{
			"match_id": matchID,
			"user_id":  userID,
		})
	},
}

var disputesCmd = &cobra.Command{
	Use:   "disputes",
	Short: "List open disputes, or a match's disputes",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/disputes"
		if matchID != "" {
			endpoint += "?matchID=" + url.QueryEscape(matchID)
		}
		return performGetRequest(endpoint)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show a league's standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings?leagueID=" + url.QueryEscape(leagueID))
	},
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the draftable agent catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/agents")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body map[string]any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
