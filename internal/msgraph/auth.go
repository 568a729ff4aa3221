package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.ReadWrite",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// Authenticator obtains Graph tokens through the device code flow and
// caches them under Dir/auth.
type Authenticator struct {
	TenantID string
	ClientID string
	// Dir is the data directory (~/.tdp).
	Dir string
	// Prompt receives the sign-in instructions.
	Prompt io.Writer
	Log    zerolog.Logger
}

// tokenFilePath returns the path to the stored token file.
func (a *Authenticator) tokenFilePath() string {
	return filepath.Join(a.Dir, "auth", "msgraph_tokens.json")
}

// oauth2Config returns the oauth2.Config for Microsoft Graph.
func (a *Authenticator) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID: a.ClientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(a.TenantID, "devicecode"),
			TokenURL:      msEndpoint(a.TenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// loadToken loads a previously saved token from disk. A missing file yields (nil, nil).
func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	path := a.tokenFilePath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", path, err)
	}
	return &tok, nil
}

// saveToken persists a token to disk.
func (a *Authenticator) saveToken(tok *oauth2.Token) error {
	path := a.tokenFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Token returns a usable token and the oauth2 config it belongs to.
// It loads saved tokens, refreshes them if needed, or initiates a new
// device code flow if no valid token is available.
func (a *Authenticator) Token(ctx context.Context) (*oauth2.Token, *oauth2.Config, error) {
	cfg := a.oauth2Config()

	tok, err := a.loadToken()
	if err != nil {
		a.Log.Warn().Err(err).Msg("ignoring stored token")
		tok = nil
	}

	if tok != nil && tok.Valid() {
		return tok, cfg, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := a.saveToken(refreshed); err != nil {
				a.Log.Warn().Err(err).Msg("could not save refreshed token")
			}
			return refreshed, cfg, nil
		}
		a.Log.Info().Err(err).Msg("token refresh failed, re-authenticating")
	}

	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("device auth request failed: %w", err)
	}

	prompt := a.Prompt
	if prompt == nil {
		prompt = os.Stdout
	}
	fmt.Fprintln(prompt)
	fmt.Fprintln(prompt, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(prompt, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(prompt, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(prompt)

	newTok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, nil, fmt.Errorf("device authentication failed: %w", err)
	}

	if err := a.saveToken(newTok); err != nil {
		a.Log.Warn().Err(err).Msg("could not save token")
	}

	return newTok, cfg, nil
}
