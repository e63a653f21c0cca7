package sheets

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// OAuthApp identifies the OAuth2 client used for the interactive
// authorization flow.
type OAuthApp struct {
	OpenBrowser  func(url string)
	ClientID     string
	ClientSecret string
	TokenFile    string
}

// authTimeout bounds how long Authorize waits for the browser callback.
const authTimeout = 5 * time.Minute

// Authorize runs the interactive OAuth2 flow: it starts a local
// callback server, hands the user a consent URL, and exchanges the
// returned code for a token with offline access. The refresh token in
// the result is what the flip log exporter needs.
func Authorize(ctx context.Context, app OAuthApp) (*oauth2.Token, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost:8080/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}

	state, err := randomState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			errChan <- fmt.Errorf("state mismatch in OAuth callback")
			renderCallbackPage(w, "Authentication Failed", "State mismatch. Please try again from the terminal.")
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			renderCallbackPage(w, "Authentication Failed", "No authorization code received. Please try again.")
			return
		}

		codeChan <- code
		renderCallbackPage(w, "Authentication Successful!", "You can close this window and return to gepulse.")
	})

	server := &http.Server{Addr: ":8080", Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to start callback server: %w", serveErr)
		}
	}()
	defer func() {
		if shutdownErr := server.Shutdown(ctx); shutdownErr != nil {
			slog.Warn("Error shutting down callback server", "error", shutdownErr)
		}
	}()

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	slog.Info("🔐 Google Sheets authorization required")
	slog.Info("Please visit this URL to authorize gepulse", "url", authURL)
	if app.OpenBrowser != nil {
		app.OpenBrowser(authURL)
	}
	slog.Info("Waiting for authorization...")

	var authCode string
	select {
	case authCode = <-codeChan:
		slog.Info("Received authorization code")
	case callbackErr := <-errChan:
		return nil, callbackErr
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("authorization timed out after %s", authTimeout)
	}

	token, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if app.TokenFile != "" {
		if saveErr := saveToken(app.TokenFile, token); saveErr != nil {
			slog.Warn("Failed to save token to file", "error", saveErr, "file", app.TokenFile)
		} else {
			slog.Info("Token saved", "file", app.TokenFile)
		}
	}

	return token, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func renderCallbackPage(w http.ResponseWriter, heading, detail string) {
	_, _ = fmt.Fprintf(w, `<html><body>
		<h1>%s</h1>
		<p>%s</p>
		<script>window.setTimeout(function(){window.close();}, 3000);</script>
	</body></html>`, heading, detail)
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	return nil
}
