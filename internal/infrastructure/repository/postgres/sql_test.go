package postgres

import "testing"

func TestChunksSplitsEvenly(t *testing.T) {
	rows := make([]int, 1200)
	got := chunks(rows, 500)
	if len(got) != 3 {
		t.Fatalf("chunk count = %d, want 3", len(got))
	}
	if len(got[0]) != 500 || len(got[1]) != 500 || len(got[2]) != 200 {
		t.Fatalf("chunk sizes = %d/%d/%d", len(got[0]), len(got[1]), len(got[2]))
	}
}

func TestChunksExactMultiple(t *testing.T) {
	rows := make([]int, 1000)
	got := chunks(rows, 500)
	if len(got) != 2 || len(got[0]) != 500 || len(got[1]) != 500 {
		t.Fatalf("unexpected chunking: %d groups", len(got))
	}
}

func TestChunksEmptyInput(t *testing.T) {
	if got := chunks([]int(nil), 500); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestChunksNonPositiveSizeKeepsOneGroup(t *testing.T) {
	rows := []int{1, 2, 3}
	got := chunks(rows, 0)
	if len(got) != 1 || len(got[0]) != 3 {
		t.Fatalf("unexpected chunking: %v", got)
	}
}
