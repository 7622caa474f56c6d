package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Simplified DTOs for the script
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type sessionData struct {
	ID               string   `json:"id"`
	AssistantMessage string   `json:"assistant_message"`
	Chips            []string `json:"chips"`
}

type recommendationData struct {
	Slug    string   `json:"slug"`
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

type messageData struct {
	Step             string               `json:"step"`
	AssistantMessage string               `json:"assistant_message"`
	Chips            []string             `json:"chips"`
	Recommendations  []recommendationData `json:"recommendations"`
}

type turn struct {
	step    string
	message string
}

var script = []turn{
	{"init", "Commencer →"},
	{"vibe", "Noir Velours, Rouge Épicé"},
	{"family", "Boisé"},
	{"notes_liked", "Oud, Rose"},
	{"notes_avoid", "Passer →"},
	{"intensity", "Présent"},
	{"occasion", "Soirée"},
}

var client = &http.Client{Timeout: 10 * time.Second}

func post(url string, body interface{}, out interface{}) (int, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, json.Unmarshal(raw, out)
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:3000/api", "API base URL")
	flag.Parse()

	color.Cyan("=== Scent Advisor Simulation Client ===")

	var session envelope[sessionData]
	status, err := post(*baseURL+"/chat/v1/session", map[string]interface{}{}, &session)
	if err != nil || status != http.StatusCreated {
		color.Red("Failed to create session (status %d): %v", status, err)
		os.Exit(1)
	}
	color.Green("Session: %s", session.Data.ID)
	fmt.Printf("🤖 %s\n   %s\n", session.Data.AssistantMessage, strings.Join(session.Data.Chips, " | "))

	for _, t := range script {
		color.Yellow("\n👤 [%s] %s", t.step, t.message)

		var reply envelope[messageData]
		status, err := post(*baseURL+"/chat/v1/message", map[string]string{
			"session_id": session.Data.ID,
			"step":       t.step,
			"message":    t.message,
		}, &reply)
		if err != nil {
			color.Red("Request failed: %v", err)
			os.Exit(1)
		}
		if status != http.StatusOK {
			color.Red("Status %d: %s", status, reply.Message)
			os.Exit(1)
		}

		fmt.Printf("🤖 %s\n", reply.Data.AssistantMessage)
		if len(reply.Data.Chips) > 0 {
			fmt.Printf("   %s\n", strings.Join(reply.Data.Chips, " | "))
		}

		for i, r := range reply.Data.Recommendations {
			color.Green("   %d. %s (%d)", i+1, r.Name, r.Score)
			for _, reason := range r.Reasons {
				fmt.Printf("      - %s\n", reason)
			}
		}
	}

	color.Cyan("\n=== Simulation complete ===")
}
