package service

import (
	"context"
	"sync/atomic"

	"strategy_dashboard/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeFeed struct {
	configured bool
	balances   []entity.Balance
	txs        []entity.Transaction
	positions  []entity.DefiPosition
	balErr     error
	txErr      error
	posErr     error
	block      bool
	calls      atomic.Int32
}

func (f *fakeFeed) Configured() bool { return f.configured }

func (f *fakeFeed) enter(ctx context.Context) error {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
	}
	return ctx.Err()
}

func (f *fakeFeed) Balances(ctx context.Context, _ string, _ []uint64) ([]entity.Balance, error) {
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	return f.balances, f.balErr
}

func (f *fakeFeed) Transactions(ctx context.Context, _ string, _ []uint64) ([]entity.Transaction, error) {
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	return f.txs, f.txErr
}

func (f *fakeFeed) DefiPositions(ctx context.Context, _ string, _ []uint64) ([]entity.DefiPosition, error) {
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	return f.positions, f.posErr
}

func f64(v float64) *float64 { return &v }
