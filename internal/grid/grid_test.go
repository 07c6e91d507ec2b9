package grid_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/grid"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

var _ = Describe("Pairs", func() {
	It("wraps the final element back to the first", func() {
		Expect(grid.Pairs([]int{0, 1, 1, 2, 3})).To(Equal([][2]int{
			{0, 1}, {1, 1}, {1, 2}, {2, 3}, {3, 0},
		}))
	})

	It("closes a single-element cycle onto itself", func() {
		Expect(grid.Pairs([]int{4})).To(Equal([][2]int{{4, 4}}))
	})
})

var _ = Describe("Project", func() {
	newDataset := func(base int, seqs ...[]int) *payload.Dataset {
		return &payload.Dataset{Base: base, Sequences: seqs}
	}

	It("marks exactly the sequence's coordinate pairs", func() {
		d := newDataset(5, []int{0, 1, 1, 2, 3})
		colors := colorize.Map(d.Sequences, []int{0}, colorize.Options{})

		buf := grid.Project(d, []int{0}, colors)

		By("coloring column seq[i], row seq[i+1]")
		want := [][2]int{{0, 1}, {1, 1}, {1, 2}, {2, 3}, {3, 0}}
		for _, p := range want {
			Expect(buf.Occupied(p[0], p[1])).To(BeTrue(), "cell (%d,%d)", p[0], p[1])
			Expect(buf.At(p[0], p[1])).To(Equal(colors[0]))
		}

		By("leaving every other cell empty")
		Expect(buf.OccupiedCount()).To(Equal(5))
	})

	It("keeps the single-sequence color at the palette base", func() {
		d := newDataset(5, []int{0, 1, 1, 2, 3})
		colors := colorize.Map(d.Sequences, []int{0}, colorize.Options{})
		// One sequence means a uniform length spread, so the first palette
		// entry is used unmodified.
		Expect(colors[0].Hex()).To(Equal(colorize.Palette[0]))
	})

	It("collapses duplicate pairs into one cell", func() {
		// 0 -> 0 -> 0: both pairs land on (0, 0).
		d := newDataset(3, []int{0, 0})
		colors := colorize.Map(d.Sequences, []int{0}, colorize.Options{})

		buf := grid.Project(d, []int{0}, colors)
		Expect(buf.OccupiedCount()).To(Equal(1))
	})

	It("lets the later sequence win shared cells", func() {
		// Both sequences produce the pair (1, 2).
		a := []int{1, 2, 0}
		b := []int{1, 2, 2}
		d := newDataset(3, a, b)
		colors := colorize.Map(d.Sequences, []int{0, 1}, colorize.Options{})

		buf := grid.Project(d, []int{0, 1}, colors)
		Expect(buf.At(1, 2)).To(Equal(colors[1]))
	})

	It("is deterministic across runs", func() {
		d := newDataset(7, []int{0, 1, 1, 2, 3, 5}, []int{1, 3, 4, 0, 4, 4})
		sel := []int{0, 1}
		colors := colorize.Map(d.Sequences, sel, colorize.Options{})

		first := grid.Project(d, sel, colors)
		second := grid.Project(d, sel, colors)
		for y := 0; y < d.Base; y++ {
			for x := 0; x < d.Base; x++ {
				Expect(first.At(x, y)).To(Equal(second.At(x, y)))
			}
		}
	})

	It("returns an all-empty buffer for an empty selection", func() {
		d := newDataset(4, []int{0, 1})
		buf := grid.Project(d, nil, nil)
		Expect(buf.Size).To(Equal(4))
		Expect(buf.OccupiedCount()).To(BeZero())
	})
})

var _ = Describe("Buffer", func() {
	It("drops out-of-bounds writes silently", func() {
		buf := grid.NewBuffer(2)
		c := colorize.RGBA{R: 1, A: 1}
		buf.Set(-1, 0, c)
		buf.Set(0, 2, c)
		buf.Set(5, 5, c)
		Expect(buf.OccupiedCount()).To(BeZero())
	})
})

var _ = Describe("EstimateBytes", func() {
	It("grows quadratically with the dimension", func() {
		Expect(grid.EstimateBytes(10)).To(Equal(int64(3200)))
		Expect(grid.EstimateBytes(1000)).To(Equal(int64(32000000)))
	})
})
