// Package asyncstate manages the lifecycle state of a single asynchronous
// operation as a tagged union: idle until the first run, pending while the
// operation is in flight, then resolved with data or rejected with an error.
//
// The package is centred around two cooperating types. Machine owns the
// current Snapshot and exposes Run, the single entry point that starts an
// operation and later folds its result back into the state through an
// internal reducer. SafeDispatcher interposes between asynchronous callbacks
// and the state they mutate: once the owning scope is closed, late-settling
// results are silently dropped instead of writing into a destroyed owner.
// SafeDispatcher is exported on its own because the pattern generalizes to
// any callback-driven mutation tied to a resource's lifetime.
//
// # Usage
//
//	import (
//	    "context"
//	    "github.com/dmitrymomot/asyncstate"
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    m := asyncstate.New[string]()
//	    defer m.Close()
//
//	    updates := m.Watch(ctx)
//
//	    m.Run(func() *asyncstate.Future[string] {
//	        return asyncstate.Go(ctx, func(ctx context.Context) (string, error) {
//	            return lookup(ctx, "pikachu")
//	        })
//	    })
//
//	    for snap := range updates {
//	        switch snap.Status {
//	        case asyncstate.StatusPending:
//	            fmt.Println("loading...")
//	        case asyncstate.StatusResolved:
//	            fmt.Println(snap.Data)
//	            return
//	        case asyncstate.StatusRejected:
//	            fmt.Println("error:", snap.Err)
//	            return
//	        }
//	    }
//	}
//
// # Error Handling
//
// Operation failures are ordinary values: a future settling with a non-nil
// error moves the machine to StatusRejected and the error is surfaced on
// Snapshot.Err. Programming errors, by contrast, are fatal: an unknown
// action kind reaching the reducer panics rather than being ignored.
//
// # Concurrency
//
// The source design runs on a single-threaded event loop; here the future's
// completion goroutine may dispatch concurrently with the caller, so Machine
// serializes every mutation behind one mutex. Watch deliveries never block
// the mutator: channels are buffered and snapshots are dropped for slow
// consumers in favor of newer ones.
//
// Overlapping runs are a documented race: no de-duplication and no
// cancellation of in-flight work exist, so whichever future settles last
// wins. Teardown via Close suppresses only the dispatch of results, never
// the underlying work.
package asyncstate
