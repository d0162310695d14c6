// Package serialization saves and loads networks in a plain text format.
//
// A network file is a stream of whitespace-separated tokens:
//
//	Format Structure:
//	  nLayers size_0 size_1 ... size_{nLayers-1}
//	  for each boundary i in [0, nLayers-1):
//	    weights[i] as a matrix: rows cols v_0 ... v_{rows*cols-1}
//	    biases[i]  as a matrix: rows cols v_0 ... v_{rows-1}
//
// Values are written with 6 decimals, so a round trip is exact to within
// 1e-6 relative to each value's magnitude. Headers are checked against
// MaxLayers and MaxDimension before anything is allocated, and every matrix
// must have the shape implied by the layer sizes.
//
// Example usage:
//
//	// Save a network
//	if err := serialization.SaveNetworkFile("mnist.nn", net); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back
//	net, err := serialization.LoadNetworkFile("mnist.nn")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer net.Release()
package serialization
