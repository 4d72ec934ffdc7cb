package roller_test

import (
	"fmt"

	"github.com/katalvlaran/fldr/bitsource"
	"github.com/katalvlaran/fldr/roller"
)

// ExampleNew builds a three-sided loaded die and shows its DDG tables.
//
// Scenario:
//
//	weights = [1, 2, 3]  → m = 6, k = 3, reject weight r = 2
//	level 0 (bit 2): nobody
//	level 1 (bit 1): outcomes 1, 2 and the reject symbol 3
//	level 2 (bit 0): outcomes 0, 2
func ExampleNew() {
	r, err := roller.New([]int{1, 2, 3})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(r)
	fmt.Println("h =", r.Levels())
	for _, row := range r.Table() {
		fmt.Println(row)
	}
	// Output:
	// fldr.Roller{n=3, m=6, k=3, r=2}
	// h = [0 3 2]
	// [-1 1 0]
	// [-1 2 2]
	// [-1 3 -1]
	// [-1 -1 -1]
}

// ExampleRoller_Sample reproduces the reference sequence: weights i mod 3
// over 255 outcomes, LCG seed 42, 62 bits per word.
func ExampleRoller_Sample() {
	r, err := roller.NewFunc(255, func(i int) int64 { return int64(i % 3) })
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	src := bitsource.NewBuffer(bitsource.NewLCG(42))

	out := make([]int, 10)
	for i := range out {
		out[i], _ = r.Sample(src)
	}
	fmt.Println(out)
	// Output:
	// [49 50 193 56 182 14 158 62 166 221]
}

// ExampleRoller_Trace shows the bit accounting of individual draws.
func ExampleRoller_Trace() {
	r, _ := roller.New([]int{1, 2, 3})
	src := bitsource.NewBuffer(bitsource.NewLCG(42))

	for i := 0; i < 3; i++ {
		res, _ := r.Trace(src)
		fmt.Printf("index=%d bits=%d restarts=%d\n", res.Index, res.Bits, res.Restarts)
	}
	// Output:
	// index=2 bits=5 restarts=1
	// index=2 bits=2 restarts=0
	// index=1 bits=2 restarts=0
}
