package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/hupe1980/fsq"
	"github.com/hupe1980/fsq/snapshot"
	"github.com/hupe1980/fsq/usage"
)

func main() {
	ctx := context.Background()

	q, err := fsq.New([]int{8, 5, 5, 5},
		fsq.WithLogger(fsq.NewTextLogger(slog.LevelDebug)),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("dimensions:", q.NumDimensions())
	fmt.Println("codebook size:", q.CodebookSize())

	vectors := [][]float32{
		{0.3, -1.2, 7.5, -0.01},
		{2.4, 0.0, -0.6, 1.1},
		{-100, 100, 0.5, -0.5},
	}

	codes, err := q.QuantizeBatch(vectors)
	if err != nil {
		log.Fatal(err)
	}
	indices, err := q.EncodeBatch(codes)
	if err != nil {
		log.Fatal(err)
	}

	for i, idx := range indices {
		fmt.Printf("%v -> %v -> %d\n", vectors[i], codes[i], idx)
	}

	tracker := usage.NewTracker(q.CodebookSize())
	if err := tracker.ObserveAll(indices); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("codebook utilization: %.4f\n", tracker.Utilization())

	store := snapshot.NewLocalStore("./data")
	if err := snapshot.Save(ctx, store, "fsq.snap", q, func(o *snapshot.Options) {
		o.Compression = snapshot.CompressionZSTD
	}); err != nil {
		log.Fatal(err)
	}

	restored, err := snapshot.Load(ctx, store, "fsq.snap")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("restored levels:", restored.Levels())
}
