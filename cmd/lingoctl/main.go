// Command lingoctl is a terminal client for the lingonotes gateway.
// It drives the same persisted store and API client the mobile app
// embeds, which makes it handy for poking a running gateway and for
// inspecting the local state file.
//
// Usage:
//
//	lingoctl [flags] <command> [args]
//
// Commands:
//
//	login-google <idToken>        sign in with a Google id token
//	sheets                        list local sheets
//	create-sheet <lang>           create a sheet for a target language
//	add <sheetId> <original> <translation>
//	review <sheetId> <sentenceId> mark a sentence reviewed
//	translate <text> <from> <to>
//	push                          push local state to the gateway
//	pull                          show the server snapshot
//	status                        show subscription status
//
// Flags:
//
//	--api    gateway base URL (default $LINGONOTES_API or http://localhost:8080)
//	--state  path to the local state file (default ~/.lingonotes/state.json)
//	--token  session token (default $LINGONOTES_TOKEN)
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/lingonotes-backend/client/api"
	"github.com/heartmarshall/lingonotes-backend/client/store"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

func main() {
	apiURL := flag.String("api", envOr("LINGONOTES_API", "http://localhost:8080"), "gateway base URL")
	statePath := flag.String("state", defaultStatePath(), "local state file")
	token := flag.String("token", os.Getenv("LINGONOTES_TOKEN"), "session token")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(*statePath, logger)
	if err != nil {
		fatalf("open state file: %v", err)
	}
	defer st.Close()

	client := api.NewClient(*apiURL)
	if *token != "" {
		client.SetToken(*token)
	}

	if err := run(ctx, st, client, flag.Args()); err != nil {
		fatalf("%v", err)
	}
}

func run(ctx context.Context, st *store.Store, client *api.Client, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login-google":
		if len(rest) != 1 {
			return usageErr("login-google <idToken>")
		}
		session, err := client.SignInGoogle(ctx, rest[0])
		if err != nil {
			return err
		}
		st.SetUser(store.Profile{
			ID:       session.User.ID,
			Email:    session.User.Email,
			Provider: session.User.Provider,
		})
		fmt.Printf("signed in as %s\ntoken: %s\n", session.User.Email, session.Token)
		return nil

	case "sheets":
		sheets := st.Sheets()
		if len(sheets) == 0 {
			fmt.Println("no sheets")
			return nil
		}
		for _, sheet := range sheets {
			fmt.Printf("%s  %s  %d sentences\n", sheet.ID, sheet.TargetLanguage, len(sheet.Sentences))
		}
		return nil

	case "create-sheet":
		if len(rest) != 1 {
			return usageErr("create-sheet <lang>")
		}
		id, err := st.CreateSheet(domain.LanguageCode(rest[0]))
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil

	case "add":
		if len(rest) != 3 {
			return usageErr("add <sheetId> <original> <translation>")
		}
		id := st.AddSentence(rest[0], store.SentenceInput{
			Original:    rest[1],
			Translation: rest[2],
		})
		if id == "" {
			return fmt.Errorf("no sheet with id %q", rest[0])
		}
		fmt.Println(id)
		return nil

	case "review":
		if len(rest) != 2 {
			return usageErr("review <sheetId> <sentenceId>")
		}
		st.MarkReviewed(rest[0], rest[1])
		return nil

	case "translate":
		if len(rest) != 3 {
			return usageErr("translate <text> <from> <to>")
		}
		translation, err := client.Translate(ctx, rest[0],
			domain.LanguageCode(rest[1]), domain.LanguageCode(rest[2]))
		if err != nil {
			return err
		}
		fmt.Println(translation)
		return nil

	case "push":
		payload, lastUpdate := st.Snapshot()
		result, err := client.Push(ctx, payload, lastUpdate)
		if err != nil {
			return err
		}
		if result.Conflict {
			fmt.Printf("conflict: server snapshot is newer (updatedAt=%d); pull to inspect it\n",
				result.Server.UpdatedAt)
			return nil
		}
		fmt.Printf("pushed, syncedAt=%d\n", result.SyncedAt)
		return nil

	case "pull":
		snapshot, err := client.Pull(ctx)
		if err != nil {
			return err
		}
		if snapshot == nil {
			fmt.Println("no server snapshot")
			return nil
		}
		fmt.Printf("updatedAt=%d\n%s\n", snapshot.UpdatedAt, snapshot.Data)
		return nil

	case "status":
		info, err := client.SubscriptionStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("status: %s\n", info.Status)
		if info.ExpiresAt != nil {
			fmt.Printf("expires: %s\n", time.UnixMilli(*info.ExpiresAt).Format(time.RFC3339))
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q, run with -h for usage", cmd)
	}
}

func usageErr(format string, args ...any) error {
	return fmt.Errorf("usage: lingoctl "+format, args...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.json"
	}
	return filepath.Join(home, ".lingonotes", "state.json")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
