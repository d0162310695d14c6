package dataset

// EmbeddedWidth is the input width of the Embedded dataset (28×28).
const EmbeddedWidth = 784

// Embedded creates a tiny synthetic dataset for demos and smoke tests.
//
// It holds 10 samples, one per class 0-9. Sample i is a bright band of rows
// starting at row 2i; it is NOT realistic MNIST data.
func Embedded() *Set {
	const numSamples = 10
	set := &Set{
		Inputs: make([][]float32, numSamples),
		Labels: make([]int, numSamples),
	}

	for i := 0; i < numSamples; i++ {
		in := make([]float32, EmbeddedWidth)
		startRow := i * 2
		for row := startRow; row < startRow+8 && row < 28; row++ {
			for col := 5; col < 23; col++ {
				in[row*28+col] = 0.8
			}
		}
		set.Inputs[i] = in
		set.Labels[i] = i
	}
	return set
}
