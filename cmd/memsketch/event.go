package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pithecene-io/memsketch/types"
)

// eventLine is the newline-delimited JSON record shape read from an
// input file, and the shape written back out for --format json.
type eventLine struct {
	EventName   string    `json:"event_name" msgpack:"event_name"`
	TraceName   string    `json:"trace_name" msgpack:"trace_name"`
	ProcessName string    `json:"process_name" msgpack:"process_name"`
	EventTime   time.Time `json:"event_time" msgpack:"event_time"`
}

func (l eventLine) toBEvent() types.BEvent {
	return types.NewBEvent(l.EventName, l.TraceName, l.ProcessName, l.EventTime)
}

func fromBEvent(e types.BEvent) eventLine {
	return eventLine{
		EventName:   e.EventName(),
		TraceName:   e.TraceName(),
		ProcessName: e.ProcessName(),
		EventTime:   e.EventTime(),
	}
}

// loadEvents reads events from inputPath's NDJSON file, or generates
// synthetic ones when inputPath is empty.
func loadEvents(inputPath string, synthetic int) ([]types.BEvent, error) {
	if inputPath == "" {
		if synthetic <= 0 {
			return nil, fmt.Errorf("either --input or --synthetic must be given")
		}
		return generateSynthetic(synthetic), nil
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer f.Close()
	return readEvents(f)
}

// readEvents decodes one BEvent per non-blank line of r.
func readEvents(r io.Reader) ([]types.BEvent, error) {
	var out []types.BEvent
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var el eventLine
		if err := json.Unmarshal(line, &el); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, el.toBEvent())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return out, nil
}

// syntheticActivities is the small alphabet synthetic events are drawn
// from; enough to exercise variant/trace merging without a real log.
var syntheticActivities = []string{"submit", "review", "approve", "reject", "close"}

// generateSynthetic produces n events across a handful of synthetic
// cases, each case tagged with a fresh UUID.
func generateSynthetic(n int) []types.BEvent {
	caseCount := max(1, n/5)
	caseIDs := make([]string, caseCount)
	for i := range caseIDs {
		caseIDs[i] = uuid.NewString()
	}

	out := make([]types.BEvent, 0, n)
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		caseID := caseIDs[rand.IntN(len(caseIDs))]
		activity := syntheticActivities[rand.IntN(len(syntheticActivities))]
		out = append(out, types.NewBEvent(activity, caseID, "synthetic", now.Add(time.Duration(i)*time.Millisecond)))
	}
	return out
}

// writeSnapshot encodes events to w in the requested format ("json" or
// "msgpack"). JSON is written one record per line, matching the input
// shape; msgpack is written as a single array.
func writeSnapshot(w io.Writer, events []types.BEvent, format string) error {
	lines := make([]eventLine, len(events))
	for i, e := range events {
		lines[i] = fromBEvent(e)
	}

	switch format {
	case "msgpack":
		enc := msgpack.NewEncoder(w)
		return enc.Encode(lines)
	case "json", "":
		enc := json.NewEncoder(w)
		for _, l := range lines {
			if err := enc.Encode(l); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q: want json or msgpack", format)
	}
}
