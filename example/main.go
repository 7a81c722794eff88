// Command pathdemo demonstrates the pathwalk library on a small service
// configuration document.
//
// Build:
//
//	go build -o pathdemo .
//
// Usage:
//
//	./pathdemo demo
//	echo '{"user":{"name":"ada"}}' | ./pathdemo eval 'user?.name' --format compact
//	./pathdemo merge defaults.json override.json --format json
package main

import (
	"fmt"
	"os"

	"github.com/relux-works/pathwalk"
	"github.com/relux-works/pathwalk/cobraext"
	"github.com/spf13/cobra"
)

// sampleConfig returns a fixed document for demonstration purposes.
func sampleConfig() map[string]any {
	return map[string]any{
		"service": map[string]any{
			"name": "billing",
			"port": 8443,
			"tls": map[string]any{
				"cert": "/etc/certs/billing.pem",
				"key":  nil, // present but unset
			},
		},
		"replicas": []any{"eu-1", "eu-2", "us-1"},
		"greet": pathwalk.Callable(func(args []any) (any, error) {
			if len(args) == 0 {
				return "hello", nil
			}
			return fmt.Sprintf("hello, %v", args[0]), nil
		}),
	}
}

// runDemo walks through the library surface programmatically.
func runDemo() error {
	cfg := sampleConfig()

	// Guarded chains short-circuit instead of failing.
	for _, path := range []string{
		"service.name",
		"service?.tls.cert",
		"service?.proxy?.host", // absent subtree
		"replicas[1]",
		"replicas[9]",     // out of range: missing
		"service.tls.key", // present but nil: empty
		`greet("ada")`,
	} {
		result, err := pathwalk.EvalString(cfg, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%-24s => %v\n", path, result)
	}

	// Unguarded access to an absent value raises instead.
	if _, err := pathwalk.EvalString(cfg, "service.proxy.host"); err != nil {
		fmt.Printf("%-24s => error: %v\n", "service.proxy.host", err)
	}

	// Shallow merge: later sources win, one key level deep.
	defaults := map[string]any{"port": 8080, "debug": false, "tags": map[string]any{"team": "core"}}
	override := map[string]any{"port": 8443, "tags": map[string]any{"env": "prod"}}
	merged := pathwalk.Merge(defaults, override)
	fmt.Printf("merged                   => %v\n", merged)

	// Projection: several paths into one record.
	projected, err := pathwalk.ProjectStrings(cfg, map[string]string{
		"name":   "service.name",
		"region": "replicas[0]",
		"proxy":  "service?.proxy?.host", // omitted: missing
	})
	if err != nil {
		return err
	}
	fmt.Printf("projected                => %v\n", projected)
	return nil
}

func main() {
	root := &cobra.Command{
		Use:   "pathdemo",
		Short: "Example CLI for the pathwalk library",
	}

	root.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Run a programmatic tour of the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	})

	// eval, merge, and project against JSON/YAML documents.
	cobraext.AddCommands(root)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
