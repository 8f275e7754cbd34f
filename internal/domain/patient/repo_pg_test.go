package patient

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthnet/healthnet/internal/platform/db"
)

type stubTx struct {
	pgx.Tx
}

func TestConn_PrefersContextTransaction(t *testing.T) {
	ctx := db.WithTx(context.Background(), stubTx{})

	got := conn(ctx, &pgxpool.Pool{})
	if _, ok := got.(stubTx); !ok {
		t.Fatalf("expected the context transaction, got %T", got)
	}
}

func TestConn_DefaultsToPool(t *testing.T) {
	pool := &pgxpool.Pool{}
	if got := conn(context.Background(), pool); got != pool {
		t.Fatalf("expected the shared pool, got %T", got)
	}
}
