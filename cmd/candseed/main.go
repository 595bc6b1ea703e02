// Command candseed reads candidate records from a JSON-lines file and
// publishes them as upsert events to the candidate-upserts topic, feeding the
// match service catalog.
//
// Each input line holds one record, e.g.:
//
//	{"id":"c-1","fields":{"full_name":"JS Plumbing","city":"Leeds"}}
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/brucee63/namematch/internal/catalog"
	"github.com/brucee63/namematch/pkg/config"
	"github.com/brucee63/namematch/pkg/kafka"
	"github.com/brucee63/namematch/pkg/logger"
)

const batchSize = 100

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	filePath := flag.String("file", "", "path to JSON-lines candidate file")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: candseed -file candidates.jsonl [-config path]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, "text")

	f, err := os.Open(*filePath)
	if err != nil {
		slog.Error("failed to open candidate file", "file", *filePath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.CandidateUpserts)
	defer producer.Close()

	ctx := context.Background()
	var batch []kafka.Event
	published, skipped := 0, 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := producer.PublishBatch(ctx, batch); err != nil {
			return err
		}
		published += len(batch)
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var event catalog.Event
		if err := json.Unmarshal(text, &event); err != nil {
			slog.Warn("skipping malformed line", "line", line, "error", err)
			skipped++
			continue
		}
		if event.ID == "" {
			slog.Warn("skipping record without id", "line", line)
			skipped++
			continue
		}
		batch = append(batch, kafka.Event{Key: event.ID, Value: event})
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				slog.Error("failed to publish batch", "error", err)
				os.Exit(1)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("failed to read candidate file", "error", err)
		os.Exit(1)
	}
	if err := flush(); err != nil {
		slog.Error("failed to publish batch", "error", err)
		os.Exit(1)
	}

	slog.Info("seeding complete", "published", published, "skipped", skipped)
}
