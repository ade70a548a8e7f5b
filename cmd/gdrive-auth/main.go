// Command gdrive-auth obtains a Google Drive refresh token for the gdrive
// storage provider. Run it once, follow the printed URL, and set the
// resulting token as GDRIVE_REFRESH_TOKEN.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
)

func main() {
	_ = godotenv.Load()

	clientID := os.Getenv("GDRIVE_CLIENT_ID")
	clientSecret := os.Getenv("GDRIVE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		fmt.Fprintln(os.Stderr, "GDRIVE_CLIENT_ID and GDRIVE_CLIENT_SECRET must be set")
		os.Exit(1)
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost:8089/callback",
		Scopes:       []string{drive.DriveFileScope},
	}

	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Println("Open this URL in your browser and authorize access:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Print("Paste the authorization code here: ")

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read code:", err)
		os.Exit(1)
	}
	code = strings.TrimSpace(code)

	tok, err := conf.Exchange(context.Background(), code)
	if err != nil {
		fmt.Fprintln(os.Stderr, "token exchange failed:", err)
		os.Exit(1)
	}
	if tok.RefreshToken == "" {
		fmt.Fprintln(os.Stderr, "no refresh token returned; revoke prior access and retry")
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("GDRIVE_REFRESH_TOKEN=" + tok.RefreshToken)
}
