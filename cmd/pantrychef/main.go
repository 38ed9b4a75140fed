package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"pantrychef/internal/ai"
	"pantrychef/internal/config"
	"pantrychef/internal/history"
	"pantrychef/internal/recipes"
	"pantrychef/internal/telemetry"
	"pantrychef/internal/templates"
)

const appVersion = "0.1.0"

func main() {
	var ingredients string
	var scale float64
	var save bool
	var serve bool
	var addr string
	var help bool

	flag.StringVar(&ingredients, "ingredients", "", "Ingredients on hand, comma or newline separated")
	flag.StringVar(&ingredients, "i", "", "Ingredients on hand (short form)")
	flag.Float64Var(&scale, "scale", 1.0, "Scale factor applied to recipe quantities")
	flag.BoolVar(&save, "save", false, "Append the generated recipe to the saved collection")
	flag.BoolVar(&serve, "serve", false, "Run HTTP server mode")
	flag.StringVar(&addr, "addr", ":8080", "Address to bind in server mode")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	// .env is optional; env vars win when both are set
	_ = godotenv.Load()

	ctx := context.Background()
	shutdown, err := telemetry.Init(ctx, appVersion)
	if err != nil {
		log.Fatalf("failed to init telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if serve {
		if err := templates.Init(); err != nil {
			log.Fatalf("failed to parse templates: %v", err)
		}
		if err := runServer(cfg, addr); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if strings.TrimSpace(ingredients) == "" {
		fmt.Println("Error: ingredients are required (or use -serve for web mode)")
		showHelp()
		os.Exit(1)
	}

	if err := run(ctx, cfg, ingredients, scale, save); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// run is the one-shot flow: normalize, take the first suggested dish,
// generate, print.
func run(ctx context.Context, cfg *config.Config, rawIngredients string, scale float64, save bool) error {
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", scale)
	}

	completer := recipes.NewCompleter(cfg)

	list, conversationID, err := completer.NormalizeIngredients(ctx, rawIngredients)
	if err != nil {
		return describeStageError("normalizing ingredients", err)
	}
	if len(list) == 0 {
		return errors.New("no recognizable ingredients in input")
	}
	fmt.Printf("Ingredients: %s\n", strings.Join(list, ", "))

	dishes, conversationID, err := completer.SuggestDishes(ctx, conversationID, list, cfg.Wizard.MaxSuggestions)
	if err != nil {
		return describeStageError("suggesting dishes", err)
	}
	if len(dishes) == 0 {
		fmt.Println("No dishes suggested for these ingredients.")
		return nil
	}
	for _, d := range dishes {
		fmt.Printf("- %s: %s\n", d.Name, d.Description)
	}

	dish := dishes[0]
	fmt.Printf("\nGenerating recipe for %s...\n\n", dish.Name)

	baseline, _, err := completer.GenerateRecipe(ctx, conversationID, ai.RecipeRequest{
		Dish:        dish,
		Ingredients: list,
		ScaleFactor: scale,
	})
	if err != nil {
		var fe *ai.FormatError
		if errors.As(err, &fe) && fe.Raw != "" {
			// not the structure we asked for but still a recipe to read
			fmt.Println(fe.Raw)
			if save {
				return history.NewStorage(cfg.History.StoragePath).Save(ai.Recipe{Title: dish.Name, RawText: fe.Raw})
			}
			return nil
		}
		return describeStageError("generating recipe", err)
	}

	recipe := baseline.Scaled(scale)
	printRecipe(recipe)

	if save {
		if err := history.NewStorage(cfg.History.StoragePath).Save(*recipe); err != nil {
			return fmt.Errorf("failed to save recipe: %w", err)
		}
		fmt.Printf("\nSaved to %s\n", cfg.History.StoragePath)
	}
	return nil
}

func printRecipe(r *ai.Recipe) {
	fmt.Printf("# %s\n", r.Title)
	if r.ScaleFactor != 1 {
		fmt.Printf("(scaled x%v)\n", r.ScaleFactor)
	}
	if r.PrepTime != "" {
		fmt.Printf("Prep %s", r.PrepTime)
		if r.CookTime != "" {
			fmt.Printf(", cook %s", r.CookTime)
		}
		fmt.Println()
	}
	fmt.Println("\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Printf("  %v %s %s\n", ing.Quantity, ing.Unit, ing.Name)
	}
	fmt.Println("\nSteps:")
	for i, step := range r.Steps {
		fmt.Printf("  %d. %s\n", i+1, step)
	}
	if len(r.Substitutions) > 0 {
		fmt.Println("\nSubstitutions:")
		for orig, alts := range r.Substitutions {
			fmt.Printf("  %s: %s\n", orig, strings.Join(alts, ", "))
		}
	}
}

// describeStageError keeps the raw response visible when the service
// answered with something unparseable.
func describeStageError(stage string, err error) error {
	var fe *ai.FormatError
	if errors.As(err, &fe) && fe.Raw != "" {
		return fmt.Errorf("%s: %w\nraw response:\n%s", stage, err, fe.Raw)
	}
	return fmt.Errorf("%s: %w", stage, err)
}

func showHelp() {
	fmt.Println("PantryChef - What can I cook with what I have?")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pantrychef -i \"egg, flour, milk\"")
	fmt.Println("  pantrychef -serve")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -ingredients, -i   Ingredients on hand, comma or newline separated")
	fmt.Println("  -scale             Scale factor applied to quantities (default 1)")
	fmt.Println("  -save              Append the generated recipe to the saved collection")
	fmt.Println("  -serve             Run HTTP server mode")
	fmt.Println("  -addr              Address to bind in server mode (default :8080)")
	fmt.Println("  -help, -h          Show this help message")
}
