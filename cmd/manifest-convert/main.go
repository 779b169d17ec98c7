package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"showroom-gallery/internal/manifest"
)

// manifest-convert turns a CSV manifest into the primary JSON manifest,
// running the same normalization pipeline the service applies at load time.

func main() {
	var (
		inPath  = flag.String("in", "", "input CSV manifest file")
		outPath = flag.String("out", "", "output JSON manifest file (default: stdout)")
		check   = flag.Bool("check", false, "verify the normalized items survive a CSV round trip")
		rawOut  = flag.Bool("raw", false, "skip normalization and emit the raw rows")
	)
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: manifest-convert -in manifest.csv [-out manifest.json] [-check]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		fatalf("failed to read %s: %v", *inPath, err)
	}

	records := manifest.RecordsFromCSV(string(data))
	raw := make([]manifest.RawItem, 0, len(records))
	for i, rec := range records {
		raw = append(raw, manifest.RawItemFromRecord(rec, i+1))
	}

	var out interface{}
	var items []manifest.Item
	if *rawOut {
		out = raw
	} else {
		items = manifest.Normalize(raw)
		out = items
		fmt.Fprintf(os.Stderr, "%d rows in, %d items out (%d dropped)\n",
			len(raw), len(items), len(raw)-len(items))
	}

	if *check && !*rawOut {
		if err := verifyRoundTrip(items); err != nil {
			fatalf("round-trip check failed: %v", err)
		}
		fmt.Fprintln(os.Stderr, "round-trip check passed")
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fatalf("failed to encode JSON: %v", err)
	}
	encoded = append(encoded, '\n')

	if *outPath == "" {
		if _, err := os.Stdout.Write(encoded); err != nil {
			fatalf("failed to write output: %v", err)
		}
		return
	}
	if err := os.WriteFile(*outPath, encoded, 0o644); err != nil {
		fatalf("failed to write %s: %v", *outPath, err)
	}
}

// verifyRoundTrip serializes items to CSV and re-parses them, confirming the
// records come back field-wise equal to the originals.
func verifyRoundTrip(items []manifest.Item) error {
	text := manifest.MarshalCSV(items)
	records := manifest.RecordsFromCSV(text)
	if len(records) != len(items) {
		return fmt.Errorf("expected %d records, got %d", len(items), len(records))
	}
	for i, rec := range records {
		reparsed := manifest.RawItemFromRecord(rec, i+1)
		it := items[i]
		if reparsed.ID != it.ID || reparsed.RID != it.RID || reparsed.Name != it.Name ||
			reparsed.DisplayName != it.DisplayName || reparsed.Category != it.Category ||
			reparsed.Type != string(it.Type) || reparsed.Src != it.Src ||
			reparsed.Folder != it.Folder || reparsed.Tags != it.Tags ||
			reparsed.ColorName != it.ColorName || reparsed.ColorHex != it.ColorHex ||
			reparsed.Year != it.Year || reparsed.Month != it.Month {
			return fmt.Errorf("record %d does not match its source item", i)
		}
	}
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
