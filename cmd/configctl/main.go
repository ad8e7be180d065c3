// Command configctl is the administration tool of the configuration
// registry. It talks to a running config-server over its REST API.
//
// Usage:
//
//	configctl -s http://localhost:8080 <command> [arguments]
//
// Commands:
//
//	list                                      list all applications
//	get <applicationID>                       print one application
//	create -f <file>                          create an application from a JSON file
//	update <applicationID> -f <file>          apply a partial update from a JSON file
//	archive <applicationID>                   archive an application
//	unarchive <applicationID>                 unarchive an application
//	config-set <applicationID> <name>         create or update a named config
//	    -data <json> -versions <v1,v2,...>
//	config-delete <applicationID> <name>      delete a named config
//	resolve <applicationID> <version>         resolve a config for a version
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MKhiriev/go-config-keeper/internal/adapter"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/models"
)

func main() {
	var (
		address string
		timeout time.Duration
	)
	flag.StringVar(&address, "s", "http://localhost:8080", "config-server address")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "configctl: no command given, see -h")
		os.Exit(2)
	}

	log := logger.NewLogger("configctl")
	client, err := adapter.NewHTTPRegistryClient(address, timeout, log)
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()
	command := flag.Arg(0)
	args := flag.Args()[1:]

	if err := run(ctx, client, command, args); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, client adapter.RegistryClient, command string, args []string) error {
	switch command {
	case "list":
		apps, err := client.ListApplications(ctx)
		if err != nil {
			return err
		}
		return printJSON(apps)

	case "get":
		if len(args) < 1 {
			return errors.New("usage: configctl get <applicationID>")
		}
		app, err := client.GetApplication(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(app)

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		file := fs.String("f", "", "path to the application JSON file")
		_ = fs.Parse(args)
		var app models.Application
		if err := readJSONFile(*file, &app); err != nil {
			return err
		}
		created, err := client.CreateApplication(ctx, app)
		if err != nil {
			return err
		}
		return printJSON(created)

	case "update":
		if len(args) < 1 {
			return errors.New("usage: configctl update <applicationID> -f <file>")
		}
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		file := fs.String("f", "", "path to the partial-update JSON file")
		_ = fs.Parse(args[1:])
		var update models.ApplicationUpdate
		if err := readJSONFile(*file, &update); err != nil {
			return err
		}
		updated, err := client.UpdateApplication(ctx, args[0], update)
		if err != nil {
			return err
		}
		return printJSON(updated)

	case "archive":
		if len(args) < 1 {
			return errors.New("usage: configctl archive <applicationID>")
		}
		return client.ArchiveApplication(ctx, args[0])

	case "unarchive":
		if len(args) < 1 {
			return errors.New("usage: configctl unarchive <applicationID>")
		}
		return client.UnarchiveApplication(ctx, args[0])

	case "config-set":
		if len(args) < 2 {
			return errors.New("usage: configctl config-set <applicationID> <name> -data <json> -versions <v1,v2,...>")
		}
		fs := flag.NewFlagSet("config-set", flag.ExitOnError)
		data := fs.String("data", "{}", "configuration payload as inline JSON")
		versions := fs.String("versions", "", "comma-separated version tokens")
		_ = fs.Parse(args[2:])

		applicationID, name := args[0], args[1]
		tokens := splitVersions(*versions)

		// update when the config already exists, create otherwise
		updated, err := client.UpdateNamedConfig(ctx, applicationID, name, json.RawMessage(*data), tokens)
		if errors.Is(err, adapter.ErrNotFound) {
			updated, err = client.CreateNamedConfig(ctx, applicationID, name, json.RawMessage(*data), tokens)
		}
		if err != nil {
			return err
		}
		return printJSON(updated)

	case "config-delete":
		if len(args) < 2 {
			return errors.New("usage: configctl config-delete <applicationID> <name>")
		}
		updated, err := client.DeleteNamedConfig(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(updated)

	case "resolve":
		if len(args) < 2 {
			return errors.New("usage: configctl resolve <applicationID> <version>")
		}
		response, err := client.GetConfig(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(response)

	default:
		return fmt.Errorf("unknown command %q, see -h", command)
	}
}

func readJSONFile(path string, v any) error {
	if path == "" {
		return errors.New("missing -f <file>")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return nil
}

func splitVersions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "configctl: %v\n", err)
	os.Exit(1)
}
