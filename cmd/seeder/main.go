package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/refindhq/refind"
	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/reports"
)

// Seed rows are "kind|reporter|name|description|location".
var demoRows = []string{
	"found|desk-staff|Black Wallet|leather bifold wallet with a small tear on the corner|main library front desk",
	"found|desk-staff|Silver Ring|silver ring with a small blue stone|gym locker room",
	"found|janitor-3|iPhone 13|black phone in a cracked red case, lock screen photo of a dog|cafeteria table 12",
	"found|janitor-3|House Keys|three keys on a carabiner with a green rubber frog keychain|parking lot B",
	"found|security-1|Blue Umbrella|compact folding umbrella, navy blue with wooden handle|bus stop on 5th avenue",
	"found|security-1|Laptop Bag|grey laptop bag with airline tag still attached|terminal 2 waiting area",
	"found|barista-7|Reading Glasses|tortoiseshell reading glasses in a soft cloth pouch|coffee shop counter",
	"found|barista-7|Water Bottle|dented steel water bottle covered in hiking stickers|trail head notice board",
	"found|desk-staff|Wrist Watch|gold wrist watch with a brown leather strap, engraved initials on back|hotel lobby",
	"found|janitor-3|Wireless Headphones|white over-ear headphones in a black zip case|seat 14C lecture hall",
	"found|security-1|Student Card|university card for the spring semester|turnstile at north gate",
	"found|barista-7|Canvas Bag|beige canvas tote bag with a botanical print|farmers market stall 4",
	"lost|alice|Black Wallet|bifold wallet, leather, torn corner, holds a transit pass|lost near the library",
	"lost|alice|House Keys|frog keychain with three keys on a clip|somewhere around parking lot B",
	"lost|bob|Phone|black iphone with a red case, the case is cracked|left at the cafeteria",
	"lost|bob|Umbrella|navy folding umbrella with a wood handle|forgot it at a bus stop downtown",
	"lost|carol|Grandmother's Ring|silver ring set with a blue topaz stone, huge sentimental value|went missing after the gym",
	"lost|carol|Watch|gold watch, leather strap, initials C.M. engraved|last seen in a hotel",
}

var (
	dbPath       = flag.String("db", "refind-db", "database directory")
	seedFileName = flag.String("src", "", "file of seed rows, one per line")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// submitRow parses one seed row and pushes it through the report pipeline.
func submitRow(ctx context.Context, pipeline *reports.Pipeline, row string) error {
	fields := strings.SplitN(row, "|", 5)
	if len(fields) != 5 {
		return fmt.Errorf("malformed seed row %q", row)
	}

	report := core.Report{
		Name:        fields[2],
		Description: fields[3],
		Location:    fields[4],
		Date:        time.Now().UTC(),
		Contact:     fields[1] + "@example.com",
		ReporterId:  core.IDFromContent([]byte(fields[1])),
	}

	switch fields[0] {
	case "found":
		_, err := pipeline.SubmitFound(ctx, &core.FoundRecord{Report: report}, nil)
		return err
	case "lost":
		_, err := pipeline.SubmitLost(ctx, &core.LostRecord{Report: report}, nil)
		return err
	default:
		return fmt.Errorf("unknown report kind %q in row %q", fields[0], row)
	}
}

func main() {
	db, err := refind.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(demoRows)
	}

	count := 0
	for row := range source {
		if strings.TrimSpace(row) == "" {
			continue
		}
		if err := submitRow(ctx, pipeline, row); err != nil {
			panic(err)
		}
		count++
	}

	// Give the embedding backfill a moment to land before the process exits.
	time.Sleep(2 * time.Second)
	slog.Info("seeding complete", "rows", count)
}
