// Command pastemyst is a small demo CLI over the client library: fetch and
// create pastes, look up users, query the local language table and resolve
// expiration expressions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	pastemyst "github.com/pastemyst/pastemyst-go"
	"github.com/pastemyst/pastemyst-go/expires"
	"github.com/pastemyst/pastemyst-go/internal/config"
	"github.com/pastemyst/pastemyst-go/language"
)

const usage = `usage: pastemyst <command> [args]

commands:
  get <id>           fetch a paste and print its pasties
  create <title>     create a paste from stdin, print its id
  user <username>    print a user's public profile
  exists <username>  check whether a username is taken
  lang <name|ext>    look up a language in the local table
  expires <expr>     resolve an expiration expression (e.g. 2h, 1M, never)

config: pastemyst.yaml in the working directory; PASTEMYST_TOKEN overrides
the configured token.`

func main() {
	cfg, err := config.Load("pastemyst.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogger(cfg.Log.Level)

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var opts []pastemyst.Option
	if cfg.BaseURL != "" {
		opts = append(opts, pastemyst.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Token != "" {
		opts = append(opts, pastemyst.WithToken(cfg.Token))
	}
	client := pastemyst.New(opts...)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	arg := os.Args[2]
	switch os.Args[1] {
	case "get":
		getPaste(ctx, client, arg)
	case "create":
		createPaste(ctx, client, arg)
	case "user":
		getUser(ctx, client, arg)
	case "exists":
		userExists(ctx, client, arg)
	case "lang":
		lookupLanguage(arg)
	case "expires":
		resolveExpiration(arg)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

func getPaste(ctx context.Context, client *pastemyst.Client, id string) {
	paste, err := client.GetPaste(ctx, id)
	if err != nil {
		log.Fatal().Err(err).Str("id", id).Msg("failed to fetch paste")
	}

	fmt.Printf("%s (%s, %s, %d stars)\n", paste.Title, paste.ID, paste.Visibility, paste.Stars)
	if paste.ExpiresAt != nil {
		fmt.Printf("expires %s\n", paste.ExpiresAt.Format(time.RFC3339))
	}
	for _, pasty := range paste.Pasties {
		fmt.Printf("--- %s [%s]\n%s\n", pasty.Title, pasty.Language, pasty.Code)
	}
}

func createPaste(ctx context.Context, client *pastemyst.Client, title string) {
	code, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read stdin")
	}

	// The async form, for demonstration; create and await.
	fut := client.CreatePasteAsync(ctx, pastemyst.CreatePasteRequest{
		Title:     title,
		ExpiresIn: pastemyst.ExpiresOneWeek,
		Pasties:   []pastemyst.Pasty{{Title: title, Code: string(code)}},
	})
	paste, err := fut.Wait(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create paste")
	}

	log.Info().Str("id", paste.ID).Msg("created paste")
	fmt.Printf("https://paste.myst.rs/%s\n", paste.ID)
}

func getUser(ctx context.Context, client *pastemyst.Client, username string) {
	user, err := client.GetUser(ctx, username)
	if err != nil {
		if pastemyst.IsNotFound(err) {
			log.Fatal().Str("username", username).Msg("no such user")
		}
		log.Fatal().Err(err).Msg("failed to fetch user")
	}

	fmt.Printf("%s (%s)\n", user.Username, user.ID)
	fmt.Printf("avatar:       %s\n", user.AvatarURL)
	fmt.Printf("default lang: %s\n", user.DefaultLang)
	fmt.Printf("contributor:  %v\n", user.Contributor)
}

func userExists(ctx context.Context, client *pastemyst.Client, username string) {
	exists, err := client.UserExists(ctx, username)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check user")
	}
	fmt.Println(exists)
}

func lookupLanguage(query string) {
	info, ok := language.FindByName(query)
	if !ok {
		info, ok = language.FindByExtension(query)
	}
	if !ok {
		fmt.Printf("no language matches %q\n", query)
		os.Exit(1)
	}

	fmt.Printf("%s (mode %s)\n", info.Name, info.Mode)
	if len(info.Aliases) > 0 {
		fmt.Printf("aliases:    %s\n", strings.Join(info.Aliases, ", "))
	}
	if len(info.Extensions) > 0 {
		fmt.Printf("extensions: %s\n", strings.Join(info.Extensions, ", "))
	}
	if info.Color != "" {
		fmt.Printf("color:      %s\n", info.Color)
	}
}

func resolveExpiration(expr string) {
	spec, err := expires.Parse(expr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid expiration expression")
	}

	at, ok := spec.Resolve(time.Now().UTC())
	if !ok {
		fmt.Println("never expires")
		return
	}
	fmt.Println(at.Format(time.RFC3339))
}
