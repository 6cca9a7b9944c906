package pipeline

import "testing"

func BenchmarkPipeline(b *testing.B) {
	pipe := New[int]()
	for i := 0; i < 8; i++ {
		pipe.AddFunc("step", func(n int) int { return n + 1 })
	}
	pipe.Guard(func(_ string, n int) {
		if n < 0 {
			b.Fatalf("negative state %d", n)
		}
	})

	for i := 0; i < b.N; i++ {
		if got := pipe.Execute(0, nil); got != 8 {
			b.Fatalf("execution produced %d", got)
		}
	}
}
