// Package beamdex evaluates cantilevered I-beam designs in process.
//
// A design vector is [H, h1, b1, b2]: total height, flange-height index into
// a fixed table, flange width and web width. Evaluation returns the beam
// volume (the objective), bending stress g1 and tip deflection g2 (the
// constraints) and whether the design is feasible.
//
//	client, _ := beamdex.New(ctx)
//	defer client.Close()
//
//	res, err := client.Evaluate(ctx, []float64{5, 3, 7, 1})
//	if errors.Is(err, beamdex.ErrIndex) { ... }
//	fmt.Println(res.Volume, res.Feasible)
//
// Optimizers that need an unconstrained scalar use Fitness or Objective,
// which add a penalty for constraint violation. Results can be memoised in
// Valkey or Redis:
//
//	client, _ := beamdex.New(ctx,
//	    beamdex.WithValkey("localhost:6379", ""),
//	    beamdex.WithCacheTTL(time.Hour),
//	)
package beamdex
