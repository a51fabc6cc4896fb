package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the server and store the access token",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Print("Identifier: ")
		var identifier string
		_, _ = fmt.Scanln(&identifier)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		body, err := json.Marshal(map[string]string{
			"identifier": identifier,
			"password":   string(password),
		})
		if err != nil {
			return err
		}

		resp, err := httpClient.Post(serverURL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("login request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("login failed (%s): %s", resp.Status, strings.TrimSpace(string(raw)))
		}

		var tokens struct {
			AccessToken string `json:"access_token"`
			ExpiresIn   int    `json:"expires_in"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
			return fmt.Errorf("decode login response: %w", err)
		}

		if err := saveToken(tokens.AccessToken); err != nil {
			return fmt.Errorf("save token: %w", err)
		}

		color.Green("Logged in as %s (token valid for %d minutes)", identifier, tokens.ExpiresIn/60)
		return nil
	},
}
