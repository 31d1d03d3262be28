package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/covercall/calc-engine/internal/model"
)

func testSnapshot(id string, updated time.Time) *model.Snapshot {
	return &model.Snapshot{
		ID: id,
		Inputs: model.TradeInputs{
			Symbol:     "AAPL",
			StockPrice: "95",
			Shares:     "100",
		},
		UpdatedAt: updated,
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	snap := testSnapshot("default", time.Now().UTC())
	if err := ms.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := ms.GetSnapshot(ctx, "default")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Inputs != snap.Inputs {
		t.Errorf("inputs = %+v, want %+v", got.Inputs, snap.Inputs)
	}
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	first := testSnapshot("default", time.Now().UTC())
	second := testSnapshot("default", time.Now().UTC())
	second.Inputs.StockPrice = "97.5"

	ms.SaveSnapshot(ctx, first)
	ms.SaveSnapshot(ctx, second)

	got, err := ms.GetSnapshot(ctx, "default")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Inputs.StockPrice != "97.5" {
		t.Errorf("stock price = %q, want the replacing value 97.5", got.Inputs.StockPrice)
	}
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	ms := NewMemoryStore()
	_, err := ms.GetSnapshot(context.Background(), "missing")
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestMemoryStore_CopiesOnReadAndWrite(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	snap := testSnapshot("default", time.Now().UTC())
	ms.SaveSnapshot(ctx, snap)

	// Mutating the caller's copy after save must not affect the store.
	snap.Inputs.StockPrice = "mutated"

	got, _ := ms.GetSnapshot(ctx, "default")
	if got.Inputs.StockPrice != "95" {
		t.Errorf("stored value changed by external mutation: %q", got.Inputs.StockPrice)
	}

	// Mutating a read result must not affect later reads.
	got.Inputs.StockPrice = "also mutated"
	again, _ := ms.GetSnapshot(ctx, "default")
	if again.Inputs.StockPrice != "95" {
		t.Errorf("stored value changed by result mutation: %q", again.Inputs.StockPrice)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ms.SaveSnapshot(ctx, testSnapshot("old", base))
	ms.SaveSnapshot(ctx, testSnapshot("new", base.Add(time.Hour)))
	ms.SaveSnapshot(ctx, testSnapshot("mid", base.Add(time.Minute)))

	snaps, err := ms.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("len = %d, want 3", len(snaps))
	}
	if snaps[0].ID != "new" || snaps[1].ID != "mid" || snaps[2].ID != "old" {
		t.Errorf("order = %s,%s,%s, want new,mid,old", snaps[0].ID, snaps[1].ID, snaps[2].ID)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	ms.SaveSnapshot(ctx, testSnapshot("default", time.Now().UTC()))
	if err := ms.DeleteSnapshot(ctx, "default"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ms.GetSnapshot(ctx, "default"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound after delete, got %v", err)
	}
	if err := ms.DeleteSnapshot(ctx, "default"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound on double delete, got %v", err)
	}
}
