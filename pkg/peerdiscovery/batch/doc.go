// Package batch runs independent work items with a fixed concurrency window.
//
// Items are split into chunks of at most Ceiling items. All items of a chunk
// run concurrently and the next chunk is dispatched only once every item of
// the current one has settled. Each item moves through an explicit state
// machine:
//
//	Pending -> InFlight -> Settled
//
// and yields exactly one Outcome, success or failure. Errors and panics raised
// by the processing function are captured per item and never abort the rest
// of the batch. The outcome slice always has the length and order of the input
// regardless of completion order.
//
// Example usage:
//
//	outcomes, err := batch.Run(ctx, ips, 50, func(ctx context.Context, ip string) (bool, error) {
//		return ping(ctx, ip)
//	})
//	for _, o := range outcomes {
//		if o.OK() && o.Value {
//			// reachable
//		}
//	}
package batch
