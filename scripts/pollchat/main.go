// Command pollchat is a terminal smoke client for the huddle server. It
// joins (or creates) a room and exercises the polling contract the same
// way the real clients do: list messages once a second, append on Enter.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

type roomResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type messageResponse struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Body   string `json:"body"`
	SentAt string `json:"sentAt"`
}

type listResponse struct {
	Messages []messageResponse `json:"messages"`
}

func main() {
	if err := run(); err != nil {
		log.Printf("pollchat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	user := flag.String("user", "cli-user", "display name")
	room := flag.String("room", "", "room code to join (empty creates a new room)")
	interval := flag.Duration("interval", time.Second, "polling interval")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: 10 * time.Second}

	code := *room
	if code == "" {
		created, err := createRoom(ctx, client, *addr, *user)
		if err != nil {
			return err
		}
		code = created.Code
		fmt.Printf("Created room %q with code %s\n", created.Name, created.Code)
	} else {
		joined, err := getRoom(ctx, client, *addr, code)
		if err != nil {
			return err
		}
		code = joined.Code
		fmt.Printf("Joined room %q (%s)\n", joined.Name, joined.Code)
	}
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	go pollLoop(ctx, client, *addr, code, *interval)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		body := strings.TrimSpace(scanner.Text())
		if body == "" {
			continue
		}
		if err := appendMessage(ctx, client, *addr, code, *user, body); err != nil {
			log.Printf("send: %v", err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil
}

func pollLoop(ctx context.Context, client *http.Client, addr, code string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	seen := make(map[string]struct{})
	for {
		select {
		case <-ticker.C:
			msgs, err := listMessages(ctx, client, addr, code)
			if err != nil {
				log.Printf("poll: %v", err)
				continue
			}
			for _, msg := range msgs {
				if _, ok := seen[msg.ID]; ok {
					continue
				}
				seen[msg.ID] = struct{}{}
				fmt.Printf("[%s] %s: %s\n", msg.SentAt, msg.Author, msg.Body)
			}
		case <-ctx.Done():
			return
		}
	}
}

func createRoom(ctx context.Context, client *http.Client, addr, user string) (roomResponse, error) {
	payload, _ := json.Marshal(map[string]string{
		"name":        user + "'s room",
		"creatorName": user,
	})
	var room roomResponse
	err := do(ctx, client, http.MethodPost, addr+"/api/rooms", payload, &room)
	return room, err
}

func getRoom(ctx context.Context, client *http.Client, addr, code string) (roomResponse, error) {
	var room roomResponse
	err := do(ctx, client, http.MethodGet, addr+"/api/rooms/"+code, nil, &room)
	return room, err
}

func listMessages(ctx context.Context, client *http.Client, addr, code string) ([]messageResponse, error) {
	var list listResponse
	err := do(ctx, client, http.MethodGet, addr+"/api/rooms/"+code+"/messages", nil, &list)
	return list.Messages, err
}

func appendMessage(ctx context.Context, client *http.Client, addr, code, user, body string) error {
	payload, _ := json.Marshal(map[string]string{
		"author": user,
		"body":   body,
	})
	return do(ctx, client, http.MethodPost, addr+"/api/rooms/"+code+"/messages", payload, nil)
}

func do(ctx context.Context, client *http.Client, method, url string, payload []byte, out any) error {
	var body *bytes.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, url, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
