package trade

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ndtswap/internal/model"
	"ndtswap/internal/storage"
)

// SimulateConfig controls batch replay behavior.
type SimulateConfig struct {
	BatchSize int
}

// Simulator replays a JSONL file of swap instructions through a Runner and
// writes one result line per instruction. Malformed or rejected instructions
// become error results instead of aborting the run.
type Simulator struct {
	cfg    SimulateConfig
	runner *Runner
	sink   storage.ResultSink
	logger *zap.Logger
}

func NewSimulator(cfg SimulateConfig, runner *Runner, sink storage.ResultSink, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{cfg: cfg, runner: runner, sink: sink, logger: logger}
}

// Run executes the replay over a swap instructions JSONL file.
func (s *Simulator) Run(ctx context.Context, inputPath string) error {
	if s.runner == nil {
		return fmt.Errorf("runner is nil")
	}
	if s.sink == nil {
		return fmt.Errorf("result sink is nil")
	}
	if s.cfg.BatchSize <= 0 {
		s.cfg.BatchSize = 1000
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	batch := make([]model.SwapResult, 0, s.cfg.BatchSize)
	var lineNo, accepted, rejected int

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var instr model.SwapInstruction
		if err := json.Unmarshal(line, &instr); err != nil {
			rejected++
			batch = append(batch, model.SwapResult{
				Error: fmt.Sprintf("line %d: parse instruction: %v", lineNo, err),
			})
		} else {
			result := model.SwapResult{PoolID: instr.PoolID, Request: instr.SwapRequest}
			quote, err := s.runner.Execute(ctx, instr.PoolID, instr.SwapRequest)
			if err != nil {
				rejected++
				result.Error = err.Error()
			} else {
				accepted++
				result.Quote = &quote
			}
			batch = append(batch, result)
		}

		if len(batch) >= s.cfg.BatchSize {
			if err := s.sink.PutResultBatch(batch); err != nil {
				return fmt.Errorf("write results: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if len(batch) > 0 {
		if err := s.sink.PutResultBatch(batch); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}

	s.logger.Info("simulation complete",
		zap.Int("instructions", lineNo),
		zap.Int("accepted", accepted),
		zap.Int("rejected", rejected),
	)

	return nil
}
