package mtimes_test

import (
	"fmt"

	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

func ExampleMtimes() {
	// A = [1 3 5 7; 2 4 6 8], stored column by column.
	a := mtimes.Fixed2x4{1, 2, 3, 4, 5, 6, 7, 8}
	b := []float64{
		1, 0, 0, 0,
		0, 1, 1, 1,
	}

	c, size, err := mtimes.Mtimes(a, b, mtimes.Size{4, 2})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(size, c)
	// Output: [2 2] [1 2 15 18]
}
