package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"chess-hybrid/board"
)

// Sample is one labelled training position.
type Sample struct {
	State  board.State
	Ctx    board.Context
	Target int
}

func parseSample(line string) (Sample, error) {
	fields := strings.SplitN(line, ";", 3)
	if len(fields) < 2 {
		return Sample{}, fmt.Errorf("bad line %q", line)
	}

	fen := strings.TrimSpace(fields[0])
	score, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Sample{}, fmt.Errorf("bad score in %q: %v", line, err)
	}

	fenFields := strings.Fields(fen)
	if len(fenFields) < 1 {
		return Sample{}, fmt.Errorf("empty fen in %q", line)
	}
	st, err := board.ParseFEN(fenFields[0])
	if err != nil {
		return Sample{}, err
	}

	ctx := board.Context{WhiteToMove: true}
	if len(fenFields) >= 2 {
		ctx.WhiteToMove = fenFields[1] == "w"
	}
	if len(fenFields) >= 3 {
		rights := fenFields[2]
		ctx.WhiteCastleKingside = strings.Contains(rights, "K")
		ctx.WhiteCastleQueenside = strings.Contains(rights, "Q")
		ctx.BlackCastleKingside = strings.Contains(rights, "k")
		ctx.BlackCastleQueenside = strings.Contains(rights, "q")
	}

	return Sample{State: st, Ctx: ctx, Target: score}, nil
}

// loadDataset parses the file through a line producer and a pool of
// parsing workers.
func loadDataset(path string, maxRows int) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	g, ctx := errgroup.WithContext(context.Background())
	lines := make(chan string, 1024)
	parsed := make(chan Sample, 1024)

	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(file)
		rows := 0
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return ctx.Err()
			}
			rows++
			if maxRows > 0 && rows >= maxRows {
				break
			}
		}
		return scanner.Err()
	})

	var wg errgroup.Group
	workers := runtime.NumCPU()
	for i := 0; i < workers; i++ {
		wg.Go(func() error {
			for line := range lines {
				sample, err := parseSample(line)
				if err != nil {
					return err
				}
				select {
				case parsed <- sample:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(parsed)
		return wg.Wait()
	})

	var samples []Sample
	collectDone := make(chan struct{})
	go func() {
		defer close(collectDone)
		for sample := range parsed {
			samples = append(samples, sample)
		}
	}()

	if err := g.Wait(); err != nil {
		<-collectDone
		return nil, err
	}
	<-collectDone
	return samples, nil
}
