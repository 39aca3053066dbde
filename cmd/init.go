package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init [directory]",
	Aliases: []string{"i"},
	Short:   "Scaffold a starter catalog",
	Long: `Create a starter patternbook project: a .patternbook.yml configuration
file and a catalog/ directory with sample principle and pattern entries
that render out of the box.

Examples:
  patternbook init                  # Scaffold in the current directory
  patternbook init docs/patterns    # Scaffold in a subdirectory
  patternbook init --force          # Overwrite existing files`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}

const initConfigTemplate = `catalog:
  source_paths:
    - ./catalog

output:
  title: Pattern Catalog
  path: PATTERNS.md

server:
  port: 8080
  host: localhost
  open: true

development:
  hot_reload: true
`

const initPrinciplesTemplate = `entries:
  - name: DRY
    section: principle
    summary: >
      Don't Repeat Yourself. Every piece of knowledge should have a
      single authoritative representation; duplicated logic drifts
      apart and breeds inconsistent fixes.
    advantages:
      - Less code to maintain
      - Fixes apply in one place
    examples:
      - caption: Extracting a shared tax rule
        language: javascript
        code: |
          function priceWithTax(price) {
            return price * 1.21;
          }

  - name: KISS
    section: principle
    summary: >
      Keep It Simple, Stupid. Prefer the simplest design that works;
      complexity needs to earn its place.
    advantages:
      - Easier onboarding
      - Fewer places for bugs to hide

  - name: YAGNI
    section: principle
    summary: >
      You Aren't Gonna Need It. Don't build capabilities for
      hypothetical futures; build them when a real requirement arrives.
    advantages:
      - Less speculative code
      - Faster delivery
`

const initPatternsTemplate = `entries:
  - name: Factory
    section: pattern
    summary: >
      Centralizes object creation so callers ask for what they need
      without knowing concrete constructors.
    examples:
      - caption: Vehicle factory
        language: javascript
        code: |
          function createVehicle(kind) {
            switch (kind) {
              case "car": return new Car();
              case "bike": return new Bike();
              default: throw new Error("unknown kind " + kind);
            }
          }

  - name: Singleton
    section: pattern
    summary: >
      Guarantees a single shared instance and a global access point to
      it.
    examples:
      - caption: Lazy shared instance
        language: javascript
        code: |
          let instance = null;
          function getConnection() {
            if (!instance) {
              instance = new Connection();
            }
            return instance;
          }

  - name: Observer
    section: pattern
    summary: >
      Lets subscribers react to state changes without the subject
      knowing who they are.
    examples:
      - caption: Simple event subject
        language: javascript
        code: |
          class Subject {
            constructor() { this.handlers = []; }
            subscribe(fn) { this.handlers.push(fn); }
            notify(data) { this.handlers.forEach((fn) => fn(data)); }
          }

  - name: Strategy
    section: pattern
    summary: >
      Swaps interchangeable algorithms behind a common interface chosen
      at runtime.
    examples:
      - caption: Pluggable sorting
        language: javascript
        code: |
          function sortWith(strategy, items) {
            return strategy(items);
          }

  - name: Module
    section: pattern
    summary: >
      Hides internal state behind a closure and exposes a minimal
      public surface.
    examples:
      - caption: Counter module
        language: javascript
        code: |
          const counter = (function () {
            let count = 0;
            return { increment: () => ++count, value: () => count };
          })();

  - name: Decorator
    section: pattern
    summary: >
      Wraps an object to add behavior without modifying its class.
    examples:
      - caption: Logging wrapper
        language: javascript
        code: |
          function withLogging(fn) {
            return function (...args) {
              console.log("calling", fn.name);
              return fn(...args);
            };
          }
`

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) == 1 {
		targetDir = args[0]
	}

	if err := os.MkdirAll(filepath.Join(targetDir, "catalog"), 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	files := map[string]string{
		filepath.Join(targetDir, ".patternbook.yml"):          initConfigTemplate,
		filepath.Join(targetDir, "catalog", "principles.yml"): initPrinciplesTemplate,
		filepath.Join(targetDir, "catalog", "patterns.yml"):   initPatternsTemplate,
	}

	for path, content := range files {
		if !initForce {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	fmt.Printf("Scaffolded catalog in %s\n", targetDir)
	fmt.Println("Next steps:")
	fmt.Println("  patternbook render        # write PATTERNS.md")
	fmt.Println("  patternbook serve         # live preview")
	return nil
}
