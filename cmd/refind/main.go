// Copyright 2026 Refind Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/refindhq/refind"
	"github.com/refindhq/refind/ai"
	"github.com/refindhq/refind/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "refind",
		Usage: "Lost and found matching and claim resolution",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "refind-db",
			},
			&cli.StringFlag{
				Name:  "ai-host",
				Usage: "OpenAI-compatible service host URL for embeddings and vision",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "embeddinggemma",
			},
			&cli.StringFlag{
				Name:  "vision-model",
				Usage: "Vision model name for photo description and comparison",
				Value: "qwen2.5vl:7b",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "report-found",
				Usage:  "Report a found item",
				Action: reportCommand(core.KindFound),
				Flags:  reportFlags(),
			},
			{
				Name:   "report-lost",
				Usage:  "Report a lost item",
				Action: reportCommand(core.KindLost),
				Flags:  reportFlags(),
			},
			{
				Name:   "search",
				Usage:  "Search found and lost records by free-text description",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Description of the item to search for",
						Required: true,
					},
				},
			},
			{
				Name:   "verify",
				Usage:  "Rank a found item against a claimant's lost reports",
				Action: verifyCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "found",
						Usage:    "Found record ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "claimant",
						Usage:    "Claimant username",
						Required: true,
					},
				},
			},
			{
				Name:   "claim",
				Usage:  "Open a claim on a found item",
				Action: claimCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "found",
						Usage:    "Found record ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "claimant",
						Usage:    "Claimant username",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "proof",
						Usage: "Why this item is yours",
					},
				},
			},
			{
				Name:   "decide",
				Usage:  "Approve or reject a claim (finder only)",
				Action: decideCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "claim",
						Usage:    "Claim request ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "decider",
						Usage:    "Deciding username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "decision",
						Usage:    "approve or reject",
						Required: true,
					},
				},
			},
			{
				Name:  "chat",
				Usage: "Message thread attached to a claim",
				Subcommands: []*cli.Command{
					{
						Name:   "post",
						Usage:  "Post a message to a claim's thread",
						Action: chatPostCommand,
						Flags: []cli.Flag{
							&cli.Uint64Flag{
								Name:     "claim",
								Usage:    "Claim request ID",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "as",
								Usage:    "Sender username",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "message",
								Aliases:  []string{"m"},
								Usage:    "Message body",
								Required: true,
							},
						},
					},
					{
						Name:   "show",
						Usage:  "Show a claim's thread",
						Action: chatShowCommand,
						Flags: []cli.Flag{
							&cli.Uint64Flag{
								Name:     "claim",
								Usage:    "Claim request ID",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "as",
								Usage:    "Reading username",
								Required: true,
							},
						},
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List stored records",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "found or lost",
						Value: "found",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter found records: pending, claimed, returned, disposed",
					},
					&cli.StringFlag{
						Name:  "owner",
						Usage: "Filter lost records by owner username",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*refind.Database, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithVisionModel(c.String("vision-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := refind.NewDatabase(c.String("db"), refind.WithAIConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func userID(username string) core.ID {
	return core.IDFromContent([]byte(username))
}

func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "Short item label",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "Free-text item description",
		},
		&cli.StringFlag{
			Name:     "location",
			Usage:    "Where the item was found or lost",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "date",
			Usage: "Date (YYYY-MM-DD, default today)",
		},
		&cli.StringFlag{
			Name:  "contact",
			Usage: "Contact details",
		},
		&cli.StringFlag{
			Name:     "reporter",
			Usage:    "Reporting username",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "image",
			Usage: "Path to a photo of the item",
		},
	}
}

func reportCommand(kind core.ReportKind) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := context.Background()

		date := time.Now().UTC()
		if raw := c.String("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", raw, err)
			}
			date = parsed
		}

		var image []byte
		imageRef := c.String("image")
		if imageRef != "" {
			var err error
			image, err = os.ReadFile(imageRef)
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
		}

		db, err := openDatabase(c)
		if err != nil {
			return err
		}
		defer db.Close()

		pipeline, err := db.NewPipeline()
		if err != nil {
			return fmt.Errorf("failed to create pipeline: %w", err)
		}
		defer pipeline.Release()

		report := core.Report{
			Name:        c.String("name"),
			Description: c.String("description"),
			Location:    c.String("location"),
			Date:        date,
			Contact:     c.String("contact"),
			ReporterId:  userID(c.String("reporter")),
			ImageRef:    imageRef,
		}

		var id core.ID
		switch kind {
		case core.KindFound:
			record, err := pipeline.SubmitFound(ctx, &core.FoundRecord{Report: report}, image)
			if err != nil {
				return fmt.Errorf("submission failed: %w", err)
			}
			id = record.Id
			waitForFoundEmbedding(ctx, db, id)
		default:
			record, err := pipeline.SubmitLost(ctx, &core.LostRecord{Report: report}, image)
			if err != nil {
				return fmt.Errorf("submission failed: %w", err)
			}
			id = record.Id
			waitForLostEmbedding(ctx, db, id)
		}

		fmt.Printf("Recorded %s report %d\n", kind, id)
		return nil
	}
}

// The embedding backfill is asynchronous; a one-shot CLI process gives it a
// bounded window to land before exiting.
func waitForFoundEmbedding(ctx context.Context, db *refind.Database, id core.ID) {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		record, err := db.FoundRepository().GetFoundRecord(ctx, id)
		if err == nil && len(record.Vector) > 0 {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	slog.Warn("embedding backfill did not finish before exit", "id", id)
}

func waitForLostEmbedding(ctx context.Context, db *refind.Database, id core.ID) {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		record, err := db.LostRepository().GetLostRecord(ctx, id)
		if err == nil && len(record.Vector) > 0 {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	slog.Warn("embedding backfill did not finish before exit", "id", id)
}

func searchCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.Search(context.Background(), c.String("query"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, result := range results {
		printResult(result)
	}
	return nil
}

func verifyCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.VerifyClaim(context.Background(), core.ID(c.Uint64("found")), userID(c.String("claimant")))
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No supporting lost reports.")
		return nil
	}

	for _, result := range results {
		printResult(result)
	}
	return nil
}

func printResult(result refind.SearchResult) {
	var report *core.Report
	switch result.Kind {
	case core.KindFound:
		report = &result.Found.Report
	default:
		report = &result.Lost.Report
	}

	fmt.Printf("[%s %d] %s - %s (score %.1f", result.Kind, report.Id, report.Name, report.Location, result.Score.Value)
	b := result.Score.Breakdown
	fmt.Printf("; lexical %.1f", b.Lexical)
	if b.HasSemantic {
		fmt.Printf(", semantic %.1f", b.Semantic)
	}
	if b.HasVisual {
		fmt.Printf(", visual %.1f", b.Visual)
	}
	if b.CategoryPenalty > 0 {
		fmt.Printf(", category -%.0f", b.CategoryPenalty)
	}
	fmt.Println(")")
}

func claimCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	controller, err := db.NewClaimController()
	if err != nil {
		return err
	}

	claim, err := controller.InitiateClaim(context.Background(),
		core.ID(c.Uint64("found")), userID(c.String("claimant")), c.String("proof"))
	if err != nil {
		return fmt.Errorf("claim failed: %w", err)
	}

	fmt.Printf("Claim %d is %s\n", claim.Id, claim.Status)
	return nil
}

func decideCommand(c *cli.Context) error {
	var decision core.ClaimDecision
	switch strings.ToLower(c.String("decision")) {
	case "approve":
		decision = core.DecisionApprove
	case "reject":
		decision = core.DecisionReject
	default:
		return fmt.Errorf("invalid decision %q: must be approve or reject", c.String("decision"))
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	controller, err := db.NewClaimController()
	if err != nil {
		return err
	}

	claim, err := controller.DecideClaim(context.Background(),
		core.ID(c.Uint64("claim")), userID(c.String("decider")), decision)
	if err != nil {
		return fmt.Errorf("decision failed: %w", err)
	}

	fmt.Printf("Claim %d is now %s\n", claim.Id, claim.Status)
	return nil
}

func chatPostCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	controller, err := db.NewClaimController()
	if err != nil {
		return err
	}

	msg, err := controller.PostMessage(context.Background(),
		core.ID(c.Uint64("claim")), userID(c.String("as")), c.String("message"))
	if err != nil {
		return fmt.Errorf("post failed: %w", err)
	}

	fmt.Printf("Posted message %d\n", msg.Id)
	return nil
}

func chatShowCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	controller, err := db.NewClaimController()
	if err != nil {
		return err
	}

	messages, err := controller.Messages(context.Background(),
		core.ID(c.Uint64("claim")), userID(c.String("as")))
	if err != nil {
		return fmt.Errorf("read failed: %w", err)
	}

	if len(messages) == 0 {
		fmt.Println("No messages.")
		return nil
	}

	for _, msg := range messages {
		fmt.Printf("%s  %d: %s\n", msg.Timestamp.Format(time.RFC3339), msg.SenderId, msg.Body)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	switch strings.ToLower(c.String("kind")) {
	case "found":
		status, err := parseFoundStatus(c.String("status"))
		if err != nil {
			return err
		}
		records, err := db.FoundRepository().ListFoundRecords(ctx, status)
		if err != nil {
			return err
		}
		for _, record := range records {
			fmt.Printf("[found %d] %s - %s (%s)\n", record.Id, record.Name, record.Location, record.Status)
		}

	case "lost":
		var records []*core.LostRecord
		if owner := c.String("owner"); owner != "" {
			records, err = db.LostRepository().ListLostRecordsByOwner(ctx, userID(owner))
		} else {
			records, err = db.LostRepository().ListLostRecords(ctx)
		}
		if err != nil {
			return err
		}
		for _, record := range records {
			fmt.Printf("[lost %d] %s - %s\n", record.Id, record.Name, record.Location)
		}

	default:
		return fmt.Errorf("invalid kind %q: must be found or lost", c.String("kind"))
	}

	return nil
}

func parseFoundStatus(raw string) (core.FoundStatus, error) {
	switch strings.ToLower(raw) {
	case "":
		return 0, nil
	case "pending":
		return core.FoundPending, nil
	case "claimed":
		return core.FoundClaimed, nil
	case "returned":
		return core.FoundReturned, nil
	case "disposed":
		return core.FoundDisposed, nil
	default:
		return 0, fmt.Errorf("invalid status %q", raw)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
