package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ethanbaker/visionsync/pkg/sdk"
	"github.com/ethanbaker/visionsync/pkg/utils"
)

// Interactive probe for a running VisionSync server
func main() {
	// Find env file
	envFile := utils.GetEnvWithDefault("ENV_FILE", ".env")

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)
	baseURL := cfg.GetWithDefault("BACKEND_BASE_URL", "http://localhost:"+cfg.GetWithDefault("PORT", "3000"))

	client := sdk.NewClient(baseURL)

	ctx := context.Background()
	if err := startInteractiveSession(ctx, client, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}
}

// startInteractiveSession reads probe commands until 'exit' or end of input
func startInteractiveSession(ctx context.Context, client *sdk.Client, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "VisionSync probe. Commands: health, token, exit.")

	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" {
			break
		}

		if input == "" {
			continue
		}

		if err := runCommand(ctx, client, input, out); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

func runCommand(ctx context.Context, client *sdk.Client, input string, out io.Writer) error {
	switch input {
	case "health":
		status, err := client.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "mode=%s assets=%t\n", status.Mode, status.Assets)

	case "token":
		token, err := client.FetchToken(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(token))

	default:
		return fmt.Errorf("unknown command %q", input)
	}

	return nil
}
