// Package loader posts customers read from a names file to the REST API.
package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const emailDomain = "example.com"

// Email derives an address from a full name: the lowercased words in
// reverse order joined by dots, so "Jo March" becomes march.jo@example.com.
func Email(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
	return strings.Join(words, ".") + "@" + emailDomain
}

type customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Loader struct {
	Client *http.Client
	URL    string
	Logger zerolog.Logger
}

// Load creates one customer per non-blank line of names and returns how many
// were created. It stops at the first failed request.
func (l *Loader) Load(ctx context.Context, names io.Reader) (int, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	created := 0
	scanner := bufio.NewScanner(names)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if err := l.post(ctx, client, customer{Name: name, Email: Email(name)}); err != nil {
			return created, fmt.Errorf("creating %q: %w", name, err)
		}
		created++
		l.Logger.Debug().Str("name", name).Msg("customer loaded")
	}
	if err := scanner.Err(); err != nil {
		return created, fmt.Errorf("reading names: %w", err)
	}
	return created, nil
}

func (l *Loader) post(ctx context.Context, client *http.Client, c customer) error {
	body, err := json.Marshal(c)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
